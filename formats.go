package nwswx

import "strings"

// Format identifies a response representation supported by the API.
type Format string

// Supported response formats. The zero value means "no preference": the
// request carries no Accept header and the server default applies.
const (
	GeoJSON Format = "geojson"
	JSONLD  Format = "jsonld"
	DWML    Format = "dwml"
	OXML    Format = "oxml"
	CAP     Format = "cap"
	ATOM    Format = "atom"
)

// contentTypes maps each format to its wire content-type. This table is the
// single source of truth for valid formats; it is fixed at startup and never
// mutated.
var contentTypes = map[Format]string{
	GeoJSON: "application/geo+json",
	JSONLD:  "application/ld+json",
	DWML:    "application/vnd.noaa.dwml+xml",
	OXML:    "application/vnd.noaa.obs+xml",
	CAP:     "application/cap+xml",
	ATOM:    "application/atom+xml",
}

// ParseFormat resolves a format token to its canonical Format value.
// Tokens match case-insensitively. The legacy "json-ld" spelling and the
// wire content-type strings are accepted too, since historical call sites
// passed either the short token or the MIME constant.
func ParseFormat(s string) (Format, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	if token == "json-ld" {
		return JSONLD, nil
	}
	if _, ok := contentTypes[Format(token)]; ok {
		return Format(token), nil
	}
	for f, ct := range contentTypes {
		if token == ct {
			return f, nil
		}
	}
	return "", &InvalidFormatError{Value: s}
}

// ContentType returns the wire content-type for the format, resolving
// case-insensitive and legacy spellings the same way ParseFormat does.
func (f Format) ContentType() (string, error) {
	canonical, err := ParseFormat(string(f))
	if err != nil {
		return "", err
	}
	return contentTypes[canonical], nil
}
