package protocol

import (
	"net"
	"regexp"
	"strconv"
	"strings"
)

// urlPattern matches <protocol>://<host>[:<port>][<path>][?<query>][#<fragment>].
var urlPattern = regexp.MustCompile(`^([A-Za-z]+)://([^/ :]+):?([0-9]*)(/[^ #?]*)?(?:\?([^ #]*))?(?:#([^ ]*))?$`)

// URL holds the components of a request URL.
// When Valid is false every other field is zero.
type URL struct {
	Protocol string
	Host     string
	Port     int
	Path     string
	Query    string
	Valid    bool
}

// ParseURL splits urlstr into its components. Malformed input is reported
// only through Valid; the fragment is matched and dropped.
func ParseURL(urlstr string) URL {
	m := urlPattern.FindStringSubmatch(urlstr)
	if m == nil {
		return URL{}
	}

	port, err := strconv.Atoi(m[3])
	if err != nil {
		port = 0
	}

	return URL{
		Protocol: strings.ToLower(m[1]),
		Host:     m[2],
		Port:     port,
		Path:     m[4],
		Query:    m[5],
		Valid:    true,
	}
}

// Service returns what the transport dials: the explicit port, or the
// protocol name so the resolver maps it to the well-known port.
func (u URL) Service() string {
	if u.Port > 0 {
		return strconv.Itoa(u.Port)
	}
	return u.Protocol
}

// String renders the URL back in protocol://host[:port]path[?query] form.
func (u URL) String() string {
	if !u.Valid {
		return ""
	}
	host := u.Host
	if u.Port > 0 {
		host = net.JoinHostPort(u.Host, strconv.Itoa(u.Port))
	}
	s := u.Protocol + "://" + host + u.Path
	if u.Query != "" {
		s += "?" + u.Query
	}
	return s
}
