package protocol

import (
	"strconv"
	"strings"
)

const crlf = "\r\n"

// BuildGetRequest serializes an HTTP/1.0 GET request for u.
func BuildGetRequest(u URL, customHeader string) []byte {
	return appendRequest(nil, &HttpRequest{Method: MethodGet, URL: u, CustomHeader: customHeader})
}

// BuildPostRequest serializes an HTTP/1.1 POST request carrying body.
func BuildPostRequest(u URL, body, customHeader string) []byte {
	return appendRequest(nil, &HttpRequest{Method: MethodPost, URL: u, CustomHeader: customHeader, Body: []byte(body)})
}

// appendRequest appends the wire form of req to buf.
//
// GET puts a '?' between path and query and speaks HTTP/1.0. POST
// concatenates path and query with no separator and speaks HTTP/1.1.
func appendRequest(buf []byte, req *HttpRequest) []byte {
	u := req.URL

	// Request line
	switch req.Method {
	case MethodPost:
		buf = append(buf, "POST "+u.Path+u.Query+" HTTP/1.1"+crlf...)
	default:
		buf = append(buf, "GET "+u.Path+"?"+u.Query+" HTTP/1.0"+crlf...)
	}

	// Headers
	buf = append(buf, "Host: "+u.Host+crlf...)
	if req.Method == MethodPost {
		buf = append(buf, "Content-Length: "+strconv.Itoa(len(req.Body))+crlf...)
	}
	buf = append(buf, "Accept: */*"+crlf...)

	if req.CustomHeader != "" {
		buf = append(buf, req.CustomHeader...)
		if !strings.HasSuffix(req.CustomHeader, crlf) {
			buf = append(buf, crlf...)
		}
	}
	buf = append(buf, "Connection: close"+crlf+crlf...)

	// Body (for POST)
	if req.Method == MethodPost {
		buf = append(buf, req.Body...)
	}
	return buf
}
