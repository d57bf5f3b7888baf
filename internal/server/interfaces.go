package server

// Server is the lifecycle contract for the transport servers exposing the
// ledger API.
//
// RunServer blocks until shutdown is requested; Shutdown releases listeners
// and in-flight resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
