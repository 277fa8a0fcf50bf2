// Package client is the entry point of libsimplehttp: blocking HTTP and
// HTTPS requests that open one connection, send the request, read until the
// server closes and split the reply into header block and body.
//
//	resp, err := client.Get("https://www.example.com/", "User-Agent: libsimplehttp")
//	if err != nil {
//		return err
//	}
//	fmt.Println(resp.Data)
//
// Errors are *errors.Error values from the errors package of this module.
package client

import "errors"

var errNoHost = errors.New("no host in URL")

var defaultClient = NewHttpClient()

// Get performs a GET request with the default client.
func Get(url string, customHeader string) (*Response, error) {
	return defaultClient.Get(url, customHeader)
}

// Post performs a POST request with the default client.
func Post(url string, body string, customHeader string) (*Response, error) {
	return defaultClient.Post(url, body, customHeader)
}
