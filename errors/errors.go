package errors

import "fmt"

// TransportError represents errors that occur at the transport layer
type TransportError int

const (
	DnsFailure TransportError = iota
	SocketCreateFailure
	SocketConnectFailure
	SocketWriteFailure
	SocketReadFailure
	ConnectionClosed
	SocketCloseFailure
	InitFailure
	TlsHandshakeFailure
)

func (e TransportError) Error() string {
	switch e {
	case DnsFailure:
		return "DNS lookup failed"
	case SocketCreateFailure:
		return "Socket creation failed"
	case SocketConnectFailure:
		return "Socket connection failed"
	case SocketWriteFailure:
		return "Socket write failed"
	case SocketReadFailure:
		return "Socket read failed"
	case ConnectionClosed:
		return "Connection closed"
	case SocketCloseFailure:
		return "Socket close failed"
	case InitFailure:
		return "Initialization failed"
	case TlsHandshakeFailure:
		return "Could not perform SSL handshake"
	default:
		return fmt.Sprintf("Unknown transport error: %d", e)
	}
}

// HttpClientError represents errors that occur at the HTTP protocol layer
type HttpClientError int

const (
	InvalidRequest HttpClientError = iota
	UnsupportedProtocol
)

func (e HttpClientError) Error() string {
	switch e {
	case InvalidRequest:
		return "Invalid HTTP request"
	case UnsupportedProtocol:
		return "Unsupported protocol"
	default:
		return fmt.Sprintf("Unknown HTTP client error: %d", e)
	}
}

// Error is the top-level error type that wraps transport and HTTP errors
type Error struct {
	TransportErr *TransportError
	HttpErr      *HttpClientError
	// Detail is kind specific context, e.g. the rejected protocol name.
	Detail     string
	underlying error
}

func (e *Error) Error() string {
	if e.TransportErr != nil {
		if *e.TransportErr == TlsHandshakeFailure {
			return fmt.Sprintf("%s: %v", e.TransportErr.Error(), e.underlying)
		}
		if e.underlying != nil {
			return fmt.Sprintf("Transport Error: %s (underlying: %v)", e.TransportErr.Error(), e.underlying)
		}
		return fmt.Sprintf("Transport Error: %s", e.TransportErr.Error())
	}
	if e.HttpErr != nil {
		if *e.HttpErr == UnsupportedProtocol {
			return fmt.Sprintf("%s '%s'", e.HttpErr.Error(), e.Detail)
		}
		if e.underlying != nil {
			return fmt.Sprintf("HTTP Client Error: %s (underlying: %v)", e.HttpErr.Error(), e.underlying)
		}
		return fmt.Sprintf("HTTP Client Error: %s", e.HttpErr.Error())
	}
	if e.underlying != nil {
		return e.underlying.Error()
	}
	return "Unknown error"
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// IsTransport reports whether e carries the given transport error kind.
func (e *Error) IsTransport(te TransportError) bool {
	return e.TransportErr != nil && *e.TransportErr == te
}

// IsHttp reports whether e carries the given HTTP client error kind.
func (e *Error) IsHttp(he HttpClientError) bool {
	return e.HttpErr != nil && *e.HttpErr == he
}

// NewTransportError creates a new Error with a TransportError
func NewTransportError(te TransportError, underlying error) *Error {
	return &Error{
		TransportErr: &te,
		underlying:   underlying,
	}
}

// NewHttpError creates a new Error with an HttpClientError
func NewHttpError(he HttpClientError, underlying error) *Error {
	return &Error{
		HttpErr:    &he,
		underlying: underlying,
	}
}

// NewUnsupportedProtocolError creates the error returned for URL schemes
// other than http and https.
func NewUnsupportedProtocolError(protocol string) *Error {
	err := NewHttpError(UnsupportedProtocol, nil)
	err.Detail = protocol
	return err
}
