package transport

import (
	"crypto/tls"
	"errors"
	"io"
	"net"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
)

// TlsTransport layers a client-side TLS session over another transport.
// The peer certificate is verified against config.RootCAs (the system pool
// when nil) and against the server name.
type TlsTransport struct {
	inner  Transport
	config *tls.Config
	conn   *tls.Conn
}

// NewTlsTransport wraps inner. When config carries no ServerName, the host
// passed to Connect is used for SNI and hostname verification.
func NewTlsTransport(inner Transport, config *tls.Config) *TlsTransport {
	return &TlsTransport{
		inner:  inner,
		config: config,
	}
}

// Connect connects the inner transport and performs the TLS handshake.
// On handshake failure the inner transport is closed.
func (t *TlsTransport) Connect(host string, service string) error {
	if err := t.inner.Connect(host, service); err != nil {
		return err
	}

	var cfg *tls.Config
	if t.config != nil {
		cfg = t.config.Clone()
	} else {
		cfg = &tls.Config{}
	}
	if cfg.ServerName == "" {
		cfg.ServerName = host
	}

	conn := tls.Client(asNetConn(t.inner), cfg)
	if err := conn.Handshake(); err != nil {
		t.inner.Close()
		return httperrors.NewTransportError(httperrors.TlsHandshakeFailure, err)
	}

	t.conn = conn
	return nil
}

// ConnectionState returns the negotiated TLS state.
func (t *TlsTransport) ConnectionState() (tls.ConnectionState, bool) {
	if t.conn == nil {
		return tls.ConnectionState{}, false
	}
	return t.conn.ConnectionState(), true
}

// Write sends data over the TLS session
func (t *TlsTransport) Write(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.SocketWriteFailure, nil)
	}

	n, err := t.conn.Write(buf)
	if err != nil {
		var httpErr *httperrors.Error
		if errors.As(err, &httpErr) {
			return n, err
		}
		if errors.Is(err, net.ErrClosed) {
			return n, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return n, httperrors.NewTransportError(httperrors.SocketWriteFailure, err)
	}

	return n, nil
}

// Read receives data from the TLS session
func (t *TlsTransport) Read(buf []byte) (int, error) {
	if t.conn == nil {
		return 0, httperrors.NewTransportError(httperrors.SocketReadFailure, nil)
	}

	n, err := t.conn.Read(buf)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return n, httperrors.NewTransportError(httperrors.ConnectionClosed, err)
		}
		return n, httperrors.NewTransportError(httperrors.SocketReadFailure, err)
	}

	return n, nil
}

// Close ends the TLS session and closes the inner transport.
func (t *TlsTransport) Close() error {
	if t.conn == nil {
		return t.inner.Close()
	}

	err := t.conn.Close()
	t.conn = nil
	// tls.Conn.Close already closed the socket underneath.
	_ = t.inner.Close()

	if err != nil {
		return httperrors.NewTransportError(httperrors.SocketCloseFailure, err)
	}

	return nil
}

// Destroy releases resources held by the inner transport.
func (t *TlsTransport) Destroy() {
	if d, ok := t.inner.(Destroyer); ok {
		d.Destroy()
	}
}
