// Package stores holds the client-side state the CLI renders: who is signed
// in and the cached notes.
//
// Stores are plain objects built by the application and passed around by
// reference. A mutex guards the state but never spans a network call, so two
// operations in flight at once race, and the response that resolves last
// decides the cached value. Every applied response bumps a monotonic
// revision, which makes that ordering observable.
package stores
