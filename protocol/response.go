package protocol

import "bytes"

var headerSeparator = []byte("\r\n\r\n")

// SplitResponse separates raw at the first blank line. Without a blank line
// the header is empty and the body is all of raw.
func SplitResponse(raw []byte) (header string, body string) {
	pos := bytes.Index(raw, headerSeparator)
	if pos < 0 {
		return "", string(raw)
	}
	return string(raw[:pos]), string(raw[pos+len(headerSeparator):])
}
