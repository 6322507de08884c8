package nwswx

import (
	"fmt"
	"net/url"
	"strconv"
)

// Client identity composed into the User-Agent of every request. The
// api.weather.gov usage policy requires applications to identify themselves
// with a contact, in the exact shape "{title} {version} [{identity}]".
const (
	clientTitle   = "nwswx"
	clientVersion = "0.4.0"
)

// requestDescriptor is one fully resolved outgoing request: final URL plus
// the headers derived from the client identity and the requested format.
// It lives only for the duration of a single call.
type requestDescriptor struct {
	url       string
	userAgent string
	accept    string
	format    Format
}

// buildRequest validates the requested format against the operation
// contract and resolves the final URL and headers. No I/O happens here;
// validation failures surface before any request is sent.
func (c *Client) buildRequest(op Operation, pathArgs []string, query url.Values, format Format) (requestDescriptor, error) {
	canonical, err := checkFormat(op, format)
	if err != nil {
		return requestDescriptor{}, err
	}

	desc := requestDescriptor{
		userAgent: fmt.Sprintf("%s %s [%s]", clientTitle, clientVersion, c.useragentID),
		format:    canonical,
	}
	if canonical != "" {
		ct, err := canonical.ContentType()
		if err != nil {
			return requestDescriptor{}, err
		}
		desc.accept = ct
	}

	args := make([]any, len(pathArgs))
	for i, a := range pathArgs {
		args[i] = a
	}
	full := c.baseURL + "/" + fmt.Sprintf(endpoints[op].path, args...)
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	desc.url = full

	return desc, nil
}

// coord renders a coordinate in its shortest exact decimal form, which is
// how the API expects lat/lon path segments.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
