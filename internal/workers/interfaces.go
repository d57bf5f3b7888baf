// Package workers provides abstractions for managing and running background
// workers in the application. It defines the Worker interface, a Workers
// aggregate that runs multiple workers in a unified way, and the pending
// decryption expiry sweeper.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Implementations are expected to block until ctx is cancelled or spawn
// goroutines internally.
type Worker interface {
	Run(ctx context.Context)
}
