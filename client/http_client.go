package client

import (
	"crypto/tls"
	"crypto/x509"

	"go.uber.org/zap"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
	"github.com/philippludwig/libsimplehttp/protocol"
	"github.com/philippludwig/libsimplehttp/transport"
)

// Response is the outcome of a successful request.
type Response struct {
	// Data is the body, or the complete raw response when it carried no
	// header block.
	Data string
	// Header is the raw header block, empty when absent.
	Header string
	// Code is reserved for the status code and is never populated.
	Code int
}

// HttpClient performs blocking GET and POST requests, one connection per
// call. It holds only configuration and is safe for concurrent use.
type HttpClient struct {
	engine     transport.Engine
	unixSocket string
	rootCAs    *x509.CertPool
	logger     *zap.Logger
}

// Option configures an HttpClient.
type Option func(*HttpClient)

// WithEngine selects the socket I/O implementation for TCP connections.
func WithEngine(engine transport.Engine) Option {
	return func(c *HttpClient) {
		c.engine = engine
	}
}

// WithUnixSocket sends every request to the Unix domain socket at path.
// The URL host is still used for the Host header and TLS verification.
func WithUnixSocket(path string) Option {
	return func(c *HttpClient) {
		c.unixSocket = path
	}
}

// WithRootCAs replaces the system trust store for https requests.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *HttpClient) {
		c.rootCAs = pool
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *HttpClient) {
		c.logger = logger
	}
}

// NewHttpClient creates a client. Without options it uses the net engine,
// the system trust store and no logging.
func NewHttpClient(opts ...Option) *HttpClient {
	c := &HttpClient{
		engine: transport.EngineNet,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Get performs a GET request. customHeader may hold one or more
// CRLF-joined header lines and may be empty.
func (c *HttpClient) Get(url string, customHeader string) (*Response, error) {
	return c.do(&protocol.HttpRequest{
		Method:       protocol.MethodGet,
		URL:          protocol.ParseURL(url),
		CustomHeader: customHeader,
	})
}

// Post performs a POST request sending body.
func (c *HttpClient) Post(url string, body string, customHeader string) (*Response, error) {
	return c.do(&protocol.HttpRequest{
		Method:       protocol.MethodPost,
		URL:          protocol.ParseURL(url),
		CustomHeader: customHeader,
		Body:         []byte(body),
	})
}

func (c *HttpClient) do(req *protocol.HttpRequest) (*Response, error) {
	u := req.URL
	logger := c.logger.With(zap.Stringer("method", req.Method), zap.String("url", u.String()))

	// A URL that failed to parse has no host to resolve.
	if u.Host == "" {
		return nil, httperrors.NewTransportError(httperrors.DnsFailure, errNoHost)
	}
	if u.Protocol != "http" && u.Protocol != "https" {
		return nil, httperrors.NewUnsupportedProtocolError(u.Protocol)
	}

	t, dialHost, err := c.newTransport(u)
	if err != nil {
		return nil, err
	}

	proto := protocol.NewHttp1Protocol(t, logger)
	defer func() {
		if err := proto.Disconnect(); err != nil {
			logger.Debug("close failed", zap.Error(err))
		}
	}()

	if err := proto.Connect(dialHost, u.Service()); err != nil {
		logger.Debug("connect failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("connected", zap.String("address", dialHost), zap.String("service", u.Service()))
	if tt, ok := t.(*transport.TlsTransport); ok {
		if state, ok := tt.ConnectionState(); ok {
			logger.Debug("tls handshake complete",
				zap.String("version", tls.VersionName(state.Version)),
				zap.String("cipher_suite", tls.CipherSuiteName(state.CipherSuite)),
			)
		}
	}

	resp, err := proto.PerformRequest(req)
	if err != nil {
		logger.Debug("request failed", zap.Error(err))
		return nil, err
	}

	return &Response{
		Data:   resp.Body,
		Header: resp.Header,
	}, nil
}

// newTransport builds the unconnected transport stack for u and returns the
// address to pass to Connect.
func (c *HttpClient) newTransport(u protocol.URL) (transport.Transport, string, error) {
	var (
		t        transport.Transport
		dialHost = u.Host
	)

	if c.unixSocket != "" {
		t = transport.NewUnixTransport()
		dialHost = c.unixSocket
	} else {
		var err error
		if t, err = transport.NewEngineTransport(c.engine); err != nil {
			return nil, "", err
		}
	}

	if u.Protocol == "https" {
		t = transport.NewTlsTransport(t, &tls.Config{
			ServerName: u.Host,
			RootCAs:    c.rootCAs,
		})
	}

	return t, dialHost, nil
}
