package transport

import (
	"fmt"
	"strings"
)

// Engine names the socket I/O implementation used for a request.
type Engine string

const (
	// EngineNet uses the Go runtime network poller.
	EngineNet Engine = "net"
	// EngineIOURing submits socket I/O through github.com/iceber/iouring-go.
	EngineIOURing Engine = "iouring"
	// EngineURing submits socket I/O through github.com/godzie44/go-uring.
	EngineURing Engine = "uring"
)

// ParseEngine validates an engine name. The empty string selects EngineNet.
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineNet, nil
	case EngineNet, EngineIOURing, EngineURing:
		return e, nil
	default:
		return "", fmt.Errorf("unknown transport engine %q", name)
	}
}

// NewEngineTransport creates an unconnected TCP transport for engine.
func NewEngineTransport(engine Engine) (Transport, error) {
	switch engine {
	case "", EngineNet:
		return NewTcpTransport(), nil
	case EngineIOURing:
		return newURingTransport()
	case EngineURing:
		return newRingTransport()
	default:
		return nil, fmt.Errorf("unknown transport engine %q", engine)
	}
}
