package interfaces

// Service is a network interface exposing the custody operations. Start must
// not block, Stop waits for in-flight requests to complete.
type Service interface {
	Start() error
	Stop()
}
