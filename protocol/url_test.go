package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  URL
	}{
		{
			name:  "full url",
			input: "http://example.com:8080/a/b?x=1&y=2#top",
			want:  URL{Protocol: "http", Host: "example.com", Port: 8080, Path: "/a/b", Query: "x=1&y=2", Valid: true},
		},
		{
			name:  "no port",
			input: "https://www.example.com/index.html",
			want:  URL{Protocol: "https", Host: "www.example.com", Path: "/index.html", Valid: true},
		},
		{
			name:  "host only",
			input: "http://example.com",
			want:  URL{Protocol: "http", Host: "example.com", Valid: true},
		},
		{
			name:  "root path",
			input: "http://www.example.com/",
			want:  URL{Protocol: "http", Host: "www.example.com", Path: "/", Valid: true},
		},
		{
			name:  "protocol lower-cased",
			input: "HTTPS://Example.com/Path",
			want:  URL{Protocol: "https", Host: "Example.com", Path: "/Path", Valid: true},
		},
		{
			name:  "query without path",
			input: "http://example.com/?q=go",
			want:  URL{Protocol: "http", Host: "example.com", Path: "/", Query: "q=go", Valid: true},
		},
		{
			name:  "empty port capture",
			input: "http://example.com:/x",
			want:  URL{Protocol: "http", Host: "example.com", Path: "/x", Valid: true},
		},
		{
			name:  "fragment dropped",
			input: "http://example.com/doc#section-2",
			want:  URL{Protocol: "http", Host: "example.com", Path: "/doc", Valid: true},
		},
		{
			name:  "unknown protocol still parses",
			input: "ftp://host/",
			want:  URL{Protocol: "ftp", Host: "host", Path: "/", Valid: true},
		},
		{
			name:  "ip host with port",
			input: "http://127.0.0.1:54321/echo",
			want:  URL{Protocol: "http", Host: "127.0.0.1", Port: 54321, Path: "/echo", Valid: true},
		},
		{"missing protocol", "example.com/path", URL{}},
		{"space in host", "http://exa mple.com/", URL{}},
		{"empty host", "http:///path", URL{}},
		{"digits in protocol", "h2c://example.com/", URL{}},
		{"non numeric port", "http://example.com:abc/", URL{}},
		{"space in path", "http://example.com/a b", URL{}},
		{"empty", "", URL{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseURL(tt.input))
		})
	}
}

func TestURL_Service(t *testing.T) {
	assert.Equal(t, "http", ParseURL("http://example.com/").Service())
	assert.Equal(t, "https", ParseURL("https://example.com/").Service())
	assert.Equal(t, "8443", ParseURL("https://example.com:8443/").Service())
	assert.Equal(t, "", ParseURL("not a url").Service())
}

func TestURL_String(t *testing.T) {
	assert.Equal(t, "http://example.com:8080/a?b=c", ParseURL("http://example.com:8080/a?b=c#d").String())
	assert.Equal(t, "https://example.com/", ParseURL("https://example.com/").String())
	assert.Equal(t, "", URL{}.String())
}
