package api

import "fmt"

// NetworkError reports a request that failed at the transport level or
// came back with a non-2xx status.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DomainError reports a transport-level success whose payload signals
// failure: result != "OK" or a shape the client cannot decode.
type DomainError struct {
	Op     string
	Result string
}

func (e *DomainError) Error() string {
	if e.Result == "" {
		return fmt.Sprintf("%s: malformed response", e.Op)
	}
	return fmt.Sprintf("%s: result %q", e.Op, e.Result)
}
