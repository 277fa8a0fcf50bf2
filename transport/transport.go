package transport

import (
	"errors"
	"io"
	"net"
	"time"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

// Transport defines the interface for network I/O operations.
// Implementations include TCP, TLS, Unix domain sockets and io_uring backed sockets.
type Transport interface {
	// Connect establishes a connection to host. The service is either a
	// decimal port or a service name such as "http" or "https".
	// For Unix sockets, the host parameter is the socket path and service is ignored.
	Connect(host string, service string) error

	// Write sends data to the connected peer.
	// Returns the number of bytes written or an error.
	Write(buf []byte) (int, error)

	// Read receives data from the connected peer.
	// Returns the number of bytes read or an error.
	Read(buf []byte) (int, error)

	// Close closes the connection.
	Close() error
}

// Destroyer is implemented by transports owning resources beyond the
// connection itself, such as an io_uring instance.
type Destroyer interface {
	Destroy()
}

// Release closes t and frees any additional resources it holds.
func Release(t Transport) error {
	err := t.Close()
	if d, ok := t.(Destroyer); ok {
		d.Destroy()
	}
	return err
}

var errEmptyHost = errors.New("empty host")

// netConner is implemented by transports built on a net.Conn.
type netConner interface {
	NetConn() net.Conn
}

// asNetConn returns a net.Conn view of a connected transport.
func asNetConn(t Transport) net.Conn {
	if nc, ok := t.(netConner); ok {
		if conn := nc.NetConn(); conn != nil {
			return conn
		}
	}
	return transportConn{t: t}
}

// transportConn adapts a Transport to net.Conn. Deadlines are not supported.
type transportConn struct {
	t Transport
}

func (c transportConn) Read(b []byte) (int, error) {
	n, err := c.t.Read(b)
	if err != nil {
		var httpErr *httperrors.Error
		if errors.As(err, &httpErr) && httpErr.IsTransport(httperrors.ConnectionClosed) {
			return n, io.EOF
		}
	}
	return n, err
}

func (c transportConn) Write(b []byte) (int, error) { return c.t.Write(b) }
func (c transportConn) Close() error                { return c.t.Close() }
func (c transportConn) LocalAddr() net.Addr         { return transportAddr{} }
func (c transportConn) RemoteAddr() net.Addr        { return transportAddr{} }
func (c transportConn) SetDeadline(time.Time) error { return nil }

func (c transportConn) SetReadDeadline(time.Time) error  { return nil }
func (c transportConn) SetWriteDeadline(time.Time) error { return nil }

type transportAddr struct{}

func (transportAddr) Network() string { return "transport" }
func (transportAddr) String() string  { return "transport" }
