// Package store provides the persistence adapters behind the client's session
// area.
//
// Every adapter implements domain.KeyValueStore: small byte values under fixed
// string keys, where a missing key is reported as absent rather than as an
// error. Stored values are usually JSON.
//
// The package includes:
//   - MemoryStore, for tests and throwaway sessions
//   - FileStore, one file per key under the configured home directory
//   - RedisStore, namespaced keys on a shared Redis
//   - SealedStore, a decorator encrypting values of any other store
//   - CartRepository, which keeps the cart between command invocations
package store
