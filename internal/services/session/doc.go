// Package session implements domain.SessionService.
//
// The session is an explicit object owned by the application graph rather
// than ambient global state. It keeps two records in a domain.KeyValueStore:
//   - clientInfo: the authenticated client returned by login
//   - restaurant: the restaurant whose menu was loaded last
//
// A record that cannot be read back is treated as absent. It is deleted and a
// warning is logged so the user can simply log in again.
package session
