// Package connerr is the connection-level error taxonomy: the reasons a
// Play/Login/Status connection closes, distinct from the byte-level codec
// errors in internal/protocol.
package connerr

import "github.com/pkg/errors"

// Kind classifies why a connection closed.
type Kind int

const (
	// Io is a socket or transform (compression/encryption) failure. Fatal.
	Io Kind = iota
	// Malformed is a byte-level codec failure surfaced from internal/protocol.
	Malformed
	// ProtocolViolation is well-formed bytes with the wrong state or wrong
	// id semantics. Fatal; a Disconnect packet is sent when the state allows one.
	ProtocolViolation
	// UnknownPacket is a well-formed packet of unrecognized id in a valid
	// state. Non-fatal: the frame is logged and skipped.
	UnknownPacket
	// KeepAliveTimeout means the client missed or mismatched a KeepAlive
	// echo. Fatal, with no Disconnect attempt.
	KeepAliveTimeout
	// AuthFailed means Mojang session verification failed or was malformed.
	// Surfaced as a login-phase Disconnect with a textual reason.
	AuthFailed
	// Capacity means a new connection arrived over the configured player cap.
	// Refused with a login-phase Disconnect.
	Capacity
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case Malformed:
		return "Malformed"
	case ProtocolViolation:
		return "ProtocolViolation"
	case UnknownPacket:
		return "UnknownPacket"
	case KeepAliveTimeout:
		return "KeepAliveTimeout"
	case AuthFailed:
		return "AuthFailed"
	case Capacity:
		return "Capacity"
	default:
		return "Unknown"
	}
}

// Error pairs a Kind with the underlying cause.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Reason + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Reason
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func Wrap(kind Kind, cause error, reason string) *Error {
	return &Error{Kind: kind, Reason: reason, Cause: errors.WithStack(cause)}
}

// Fatal reports whether Kind terminates the connection outright.
func (k Kind) Fatal() bool {
	return k != UnknownPacket
}
