// Package api provides the HTTP implementation of domain.RestaurantAPI.
//
// The restaurant service speaks JSON over HTTP. Every request carries a fresh
// X-Request-ID and accepts a context for cancellation and deadlines. Failures
// are returned as coded errors:
//   - transport failures are NETWORK_ERROR
//   - non-2xx statuses are SERVER_ERROR with the status and the server's message
//   - bodies that do not decode are MALFORMED_RESPONSE
package api
