package transport

import (
	"errors"
	"io"
	"net"
	"syscall"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

// TcpTransport implements the Transport interface using TCP sockets
type TcpTransport struct {
	dialer net.Dialer
	conn   net.Conn
}

// NewTcpTransport creates a new TcpTransport instance
func NewTcpTransport() *TcpTransport {
	return &TcpTransport{
		conn: nil,
	}
}

// Connect establishes a TCP connection to host. When service is a name
// rather than a number, the port is looked up in the services database.
func (t *TcpTransport) Connect(host string, service string) error {
	if host == "" {
		return httperrors.NewTransportError(httperrors.DnsFailure, errEmptyHost)
	}
	addr := net.JoinHostPort(host, service)

	conn, err := t.dialer.Dial("tcp", addr)
	if err != nil {
		return classifyDialError(err)
	}

	// Set TCP_NODELAY to disable Nagle's algorithm for lower latency
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tcpConn.SetNoDelay(true); err != nil {
			conn.Close()
			return httperrors.NewTransportError(httperrors.InitFailure, err)
		}
	}

	t.conn = conn
	return nil
}

// classifyDialError maps a dial failure onto the transport error kinds.
func classifyDialError(err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return httperrors.NewTransportError(httperrors.DnsFailure, err)
	}
	var addrErr *net.AddrError
	if errors.As(err, &addrErr) {
		return httperrors.NewTransportError(httperrors.DnsFailure, err)
	}
	return httperrors.NewTransportError(httperrors.SocketConnectFailure, err)
}

// NetConn returns the underlying connection, nil when not connected.
func (t *TcpTransport) NetConn() net.Conn {
	return t.conn
}

// Write sends data over the TCP connection
func (t *TcpTransport) Write(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.SocketWriteFailure, nil)
	}

	n, err := t.conn.Write(buf)
	if err != nil {
		// Check for broken pipe or connection reset
		if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
			return n, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return n, httperrors.NewTransportError(httperrors.SocketWriteFailure, err)
	}

	return n, nil
}

// Read receives data from the TCP connection
func (t *TcpTransport) Read(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.SocketReadFailure, nil)
	}

	n, err := t.conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) || (n == 0 && len(buf) > 0) {
			return n, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return n, httperrors.NewTransportError(httperrors.SocketReadFailure, err)
	}

	return n, nil
}

// Close closes the TCP connection
func (t *TcpTransport) Close() error {
	if t.conn == nil {
		return nil // Idempotent close
	}

	err := t.conn.Close()
	t.conn = nil

	if err != nil {
		return httperrors.NewTransportError(httperrors.SocketCloseFailure, err)
	}

	return nil
}
