package company

import "errors"

var (
	// ErrMissingDomain indicates a raw input unit lacks a usable domain.
	// Callers skip the offending unit and continue.
	ErrMissingDomain = errors.New("record must contain a domain")
	// ErrDomainMismatch indicates an attempted merge across different domains.
	// This is a programmer error and is not recoverable.
	ErrDomainMismatch = errors.New("cannot merge records for different domains")
)
