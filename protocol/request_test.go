package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGetRequest(t *testing.T) {
	u := ParseURL("http://example.com/search?q=go#frag")

	got := string(BuildGetRequest(u, ""))

	want := "GET /search?q=go HTTP/1.0\r\n" +
		"Host: example.com\r\n" +
		"Accept: */*\r\n" +
		"Connection: close\r\n" +
		"\r\n"
	assert.Equal(t, want, got)
}

func TestBuildGetRequest_EmptyQueryKeepsSeparator(t *testing.T) {
	got := string(BuildGetRequest(ParseURL("http://example.com/"), ""))

	assert.True(t, strings.HasPrefix(got, "GET /? HTTP/1.0\r\n"), got)
}

func TestBuildPostRequest(t *testing.T) {
	u := ParseURL("https://api.example.com/submit?debug=1")

	got := string(BuildPostRequest(u, "name=value", ""))

	want := "POST /submitdebug=1 HTTP/1.1\r\n" +
		"Host: api.example.com\r\n" +
		"Content-Length: 10\r\n" +
		"Accept: */*\r\n" +
		"Connection: close\r\n" +
		"\r\n" +
		"name=value"
	assert.Equal(t, want, got)
}

func TestBuildPostRequest_ContentLengthCountsBytes(t *testing.T) {
	got := string(BuildPostRequest(ParseURL("http://h/p"), "héllo", ""))

	assert.Contains(t, got, "Content-Length: 6\r\n")
	assert.True(t, strings.HasSuffix(got, "\r\n\r\nhéllo"))
}

func TestBuildRequest_CustomHeader(t *testing.T) {
	u := ParseURL("http://example.com/")

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"terminator appended", "X-Test: 1", "Accept: */*\r\nX-Test: 1\r\nConnection: close\r\n\r\n"},
		{"no double terminator", "X-Test: 1\r\n", "Accept: */*\r\nX-Test: 1\r\nConnection: close\r\n\r\n"},
		{"several lines", "A: 1\r\nB: 2", "Accept: */*\r\nA: 1\r\nB: 2\r\nConnection: close\r\n\r\n"},
		{"empty header", "", "Accept: */*\r\nConnection: close\r\n\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			get := string(BuildGetRequest(u, tt.header))
			assert.True(t, strings.HasSuffix(get, tt.want), get)

			post := string(BuildPostRequest(u, "", tt.header))
			assert.True(t, strings.HasSuffix(post, tt.want), post)
		})
	}
}

func TestBuildRequest_RequestLineRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"http://example.com/a/b?c=d",
		"https://example.com:8443/x?",
		"http://example.com",
	} {
		u := ParseURL(raw)

		getLine := strings.SplitN(string(BuildGetRequest(u, "")), "\r\n", 2)[0]
		assert.Equal(t, "GET "+u.Path+"?"+u.Query+" HTTP/1.0", getLine, raw)

		postLine := strings.SplitN(string(BuildPostRequest(u, "x", "")), "\r\n", 2)[0]
		assert.Equal(t, "POST "+u.Path+u.Query+" HTTP/1.1", postLine, raw)
	}
}
