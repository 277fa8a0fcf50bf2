package protocol

// HttpMethod represents HTTP request methods
type HttpMethod int

const (
	MethodGet HttpMethod = iota
	MethodPost
)

func (m HttpMethod) String() string {
	if m == MethodPost {
		return "POST"
	}
	return "GET"
}

// HttpRequest represents an HTTP request
type HttpRequest struct {
	Method HttpMethod
	URL    URL
	// CustomHeader is inserted verbatim before "Connection: close". It may
	// hold several CRLF-joined header lines.
	CustomHeader string
	Body         []byte
}

// HttpResponse is a response split at the first blank line.
type HttpResponse struct {
	// Header is the raw header block without the terminating blank line,
	// empty when the response had none.
	Header string
	// Body is everything after the blank line, or the whole response when
	// no header block was found.
	Body string
}
