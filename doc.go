// Package nwswx is a thin client for the National Weather Service (NWS)
// forecast API at https://api.weather.gov.
//
// # Content Negotiation
//
// Every response representation is a named Format bound to a wire
// content-type:
//
//	geojson → application/geo+json
//	jsonld  → application/ld+json
//	dwml    → application/vnd.noaa.dwml+xml
//	oxml    → application/vnd.noaa.obs+xml
//	cap     → application/cap+xml
//	atom    → application/atom+xml
//
// Each endpoint accepts only a subset of these; the contract table in
// [AllowedFormats] enforces the subset before any request is sent. Passing
// the zero Format omits the Accept header entirely and the server picks its
// default. Only JSON-LD responses are parsed: [Result.Decode] addresses the
// payload, with forecast-period and station lists unwrapped from their
// wrapper objects. Everything else comes back as opaque text via
// [Result.Text] for the caller to interpret.
//
// # Forecast Resolution
//
// The API serves forecasts per Weather Forecast Office (WFO) grid cell, not
// per coordinate. [Client.PointForecast] therefore resolves point metadata
// first to obtain gridId/gridX/gridY and then requests
// gridpoints/{gridId}/{gridX},{gridY}/forecast. Two sequential calls; a
// failed resolution aborts the chain.
//
// # Identification
//
// The api.weather.gov usage policy requires requests to identify the
// calling application and a contact. Every request carries
//
//	User-Agent: {title} {version} [{identity}]
//
// where identity is the contact string given to [New], typically an email
// address or URL.
//
// # Errors
//
// Failures map to five types, all matched with errors.As:
// [InvalidFormatError] (token not in the registry), [FormatNotAllowedError]
// (registered but not permitted for the operation, raised before network
// I/O), [APIError] (structured problem document, Error returns the server
// detail), [TransportError] (non-2xx without a problem document, or the
// request never completed), and [MalformedResponseError] (structured body
// undecodable or missing an expected field). Nothing is retried
// internally.
package nwswx
