package types

import (
	"errors"
	"fmt"
)

// Authorization error codes.
const (
	ErrCodeInvalidDescriptor     = "authz.invalid_descriptor"      // local contract violation, never sent to host
	ErrCodeDenied                = "authz.denied"                  // host resolved with an error
	ErrCodeHostContractViolation = "authz.host_contract_violation" // host broke the single-shot contract
)

// AuthError is an authorization failure with a structured code.
type AuthError struct {
	Code    string // one of the ErrCode* constants
	Message string
	Err     error // host error for denials, nil otherwise
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the host error so errors.Is reaches it.
func (e *AuthError) Unwrap() error { return e.Err }

// InvalidDescriptor reports a descriptor that violates its invariants.
func InvalidDescriptor(detail string) *AuthError {
	return &AuthError{Code: ErrCodeInvalidDescriptor, Message: detail}
}

// AuthorizationDenied wraps the host's error verbatim.
func AuthorizationDenied(hostErr error) *AuthError {
	msg := "denied"
	if hostErr != nil {
		msg = hostErr.Error()
	}
	return &AuthError{Code: ErrCodeDenied, Message: msg, Err: hostErr}
}

// HostContractViolation reports a host callback that resolved with neither
// or both of signature and error, or resolved more than once.
func HostContractViolation(detail string) *AuthError {
	return &AuthError{Code: ErrCodeHostContractViolation, Message: detail}
}

// ErrorCode extracts the authorization code from err, or "".
func ErrorCode(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsDenied reports whether err must be handled as a denial. Host contract
// violations fail closed and count as denials.
func IsDenied(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeDenied, ErrCodeHostContractViolation:
		return true
	}
	return false
}

// IsInvalidDescriptor reports whether err is a local descriptor violation.
func IsInvalidDescriptor(err error) bool {
	return ErrorCode(err) == ErrCodeInvalidDescriptor
}
