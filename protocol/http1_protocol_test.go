package protocol

import (
	"io"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/philippludwig/libsimplehttp/errors"
	"github.com/philippludwig/libsimplehttp/transport"
)

// scriptedTransport replays canned reads and records what was written.
type scriptedTransport struct {
	written  []byte
	reads    []string
	finalErr error
	writeErr error
	closed   bool
}

func (s *scriptedTransport) Connect(host string, service string) error { return nil }

func (s *scriptedTransport) Write(buf []byte) (int, error) {
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.written = append(s.written, buf...)
	return len(buf), nil
}

func (s *scriptedTransport) Read(buf []byte) (int, error) {
	if len(s.reads) == 0 {
		return 0, s.finalErr
	}
	n := copy(buf, s.reads[0])
	s.reads[0] = s.reads[0][n:]
	if s.reads[0] == "" {
		s.reads = s.reads[1:]
	}
	return n, nil
}

func (s *scriptedTransport) Close() error {
	s.closed = true
	return nil
}

func TestHttp1Protocol_PerformRequest(t *testing.T) {
	tr := &scriptedTransport{
		reads:    []string{"HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n", "\r\nhello ", "world"},
		finalErr: httperrors.NewTransportError(httperrors.ConnectionClosed, io.EOF),
	}
	proto := NewHttp1Protocol(tr, nil)

	req := &HttpRequest{Method: MethodGet, URL: ParseURL("http://example.com/greet?lang=en")}
	resp, err := proto.PerformRequest(req)
	require.NoError(t, err)

	assert.Equal(t, string(BuildGetRequest(req.URL, "")), string(tr.written))
	assert.Equal(t, "HTTP/1.0 200 OK\r\nContent-Type: text/plain", resp.Header)
	assert.Equal(t, "hello world", resp.Body)

	require.NoError(t, proto.Disconnect())
	assert.True(t, tr.closed)
}

func TestHttp1Protocol_ReadFaultKeepsPartialData(t *testing.T) {
	tr := &scriptedTransport{
		reads:    []string{"HTTP/1.1 200 OK\r\n\r\npartial"},
		finalErr: httperrors.NewTransportError(httperrors.SocketReadFailure, io.ErrUnexpectedEOF),
	}
	proto := NewHttp1Protocol(tr, nil)

	resp, err := proto.PerformRequest(&HttpRequest{Method: MethodPost, URL: ParseURL("http://example.com/"), Body: []byte("x")})
	require.NoError(t, err)

	assert.Equal(t, "HTTP/1.1 200 OK", resp.Header)
	assert.Equal(t, "partial", resp.Body)
}

func TestHttp1Protocol_WriteFailure(t *testing.T) {
	writeErr := httperrors.NewTransportError(httperrors.SocketWriteFailure, nil)
	tr := &scriptedTransport{writeErr: writeErr}
	proto := NewHttp1Protocol(tr, nil)

	resp, err := proto.PerformRequest(&HttpRequest{URL: ParseURL("http://example.com/")})

	assert.Nil(t, resp)
	assert.Equal(t, writeErr, err)
}

func TestHttp1Protocol_InvalidRequest(t *testing.T) {
	tr := &scriptedTransport{}
	proto := NewHttp1Protocol(tr, nil)

	for _, req := range []*HttpRequest{
		{Method: MethodGet, URL: ParseURL("http://a/"), Body: []byte("unexpected")},
		{Method: HttpMethod(42), URL: ParseURL("http://a/")},
	} {
		resp, err := proto.PerformRequest(req)

		assert.Nil(t, resp)
		var httpErr *httperrors.Error
		require.ErrorAs(t, err, &httpErr)
		assert.True(t, httpErr.IsHttp(httperrors.InvalidRequest), err.Error())
	}
	assert.Empty(t, tr.written, "nothing is sent for an invalid request")
}

func TestHttp1Protocol_BufferReuse(t *testing.T) {
	tr := &scriptedTransport{finalErr: io.EOF}
	proto := NewHttp1Protocol(tr, nil)

	_, err := proto.PerformRequest(&HttpRequest{Method: MethodPost, URL: ParseURL("http://a/"), Body: []byte("first body")})
	require.NoError(t, err)

	tr.written = nil
	_, err = proto.PerformRequest(&HttpRequest{URL: ParseURL("http://b/")})
	require.NoError(t, err)

	assert.Equal(t, string(BuildGetRequest(ParseURL("http://b/"), "")), string(tr.written))
}

func TestHttp1Protocol_OverTcp(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 4096)
		n, _ := conn.Read(buf)
		received <- string(buf[:n])
		conn.Write([]byte("HTTP/1.0 200 OK\r\nServer: test\r\n\r\n<html></html>"))
	}()

	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	u := ParseURL("http://127.0.0.1:" + port + "/index.html")

	proto := NewHttp1Protocol(transport.NewTcpTransport(), nil)
	require.NoError(t, proto.Connect(u.Host, u.Service()))
	defer proto.Disconnect()

	resp, err := proto.PerformRequest(&HttpRequest{URL: u, CustomHeader: "User-Agent: libsimplehttp"})
	require.NoError(t, err)

	assert.Equal(t, "GET /index.html? HTTP/1.0\r\nHost: 127.0.0.1\r\nAccept: */*\r\nUser-Agent: libsimplehttp\r\nConnection: close\r\n\r\n", <-received)
	assert.Equal(t, "HTTP/1.0 200 OK\r\nServer: test", resp.Header)
	assert.Equal(t, "<html></html>", resp.Body)
}
