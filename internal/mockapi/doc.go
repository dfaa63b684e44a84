// Package mockapi is an in-memory stand-in for the restaurant service.
//
// It serves the same routes and JSON shapes the client consumes, keeps all
// state in process memory, and can be told to fail specific routes so the
// client's error paths can be exercised end to end. It is not a production
// backend: there is no persistence and no authentication beyond the login
// check.
package mockapi
