package wanaplay

import "fmt"

// AuthError means the login handshake did not end on the expected landing
// page. It is fatal for the whole run: retrying with the same credentials
// will not help.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("wanaplay: unable to login: %s", e.Reason)
}

// TransportError wraps a failed HTTP round trip.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wanaplay: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means an expected piece of markup is missing, which usually
// signals a site layout change rather than a transient condition.
type ParseError struct {
	What string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("wanaplay: markup missing %s", e.What)
}
