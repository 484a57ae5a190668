package api

import (
	"fmt"
)

// TransportError is a network failure or a non-success status that carried
// no domain error body.
type TransportError struct {
	Op     string
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Op, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SoftDomainError is a well-formed backend response reporting a failure,
// such as an unknown disease or a model that is not loaded.
type SoftDomainError struct {
	Op      string
	Message string
}

func (e *SoftDomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// MalformedPayloadError is a response that could not be decoded or that
// violates the payload invariants.
type MalformedPayloadError struct {
	Op  string
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("%s: malformed payload: %v", e.Op, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}
