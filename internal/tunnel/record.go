// Package tunnel holds the data model for online tunnels scraped from the
// dashboard status page, plus the grouping and filtering that reporting is
// built on.
package tunnel

import "strings"

// Proto values for Record.Proto.
const (
	ProtoHttp  = "http"
	ProtoHttps = "https"
	ProtoTcp   = "tcp"
)

// Record is one row of the status table. Optional fields are pointers so the
// JSON export renders an explicit null rather than omitting the key. Records
// are never mutated after extraction.
type Record struct {
	// Name is the tunnel identifier as displayed. Empty string is a valid
	// value, not an absent field.
	Name string `json:"name"`
	// Url is the public-facing address, if the row carried a link.
	Url *string `json:"url"`
	// Proto is derived solely from Url's scheme prefix; nil when there is no
	// url or the scheme is unrecognized.
	Proto *string `json:"proto"`
	// Local is the first host:port-shaped cell text of the row.
	Local *string `json:"local"`
	// Region is a short point-of-presence code, in the casing the page used.
	Region *string `json:"region"`
}

// ProtoForUrl derives the tunnel protocol from a public url. It is a pure
// function of the scheme prefix: anything other than https://, http:// or
// tcp:// yields nil.
func ProtoForUrl(link string) *string {
	switch {
	case strings.HasPrefix(link, "https://"):
		p := ProtoHttps
		return &p
	case strings.HasPrefix(link, "http://"):
		p := ProtoHttp
		return &p
	case strings.HasPrefix(link, "tcp://"):
		p := ProtoTcp
		return &p
	}
	return nil
}
