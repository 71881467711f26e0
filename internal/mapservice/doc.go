// Package mapservice owns a single metro.Map on behalf of concurrent
// callers. Every engine call runs under one mutex, which keeps neighbor
// symmetry and line membership consistent while the HTTP and socket.io
// layers serve requests in parallel.
//
// The service also keeps a render snapshot of the whole map in a cache that
// is flushed by every successful mutation, and notifies subscribers of each
// change.
package mapservice
