package nwswx

// Operation identifies one logical API call.
type Operation string

// Catalogued operations.
const (
	OpPoint               Operation = "point"
	OpGridpoint           Operation = "gridpoint"
	OpPointForecast       Operation = "point forecast"
	OpPointHourlyForecast Operation = "hourly forecast"
	OpPointStations       Operation = "stations"
	OpAlerts              Operation = "alerts"
	OpActiveAlerts        Operation = "active alerts"
	OpAlert               Operation = "alert"
)

// endpointSpec fixes the contract for one operation: its path template, the
// formats it permits, and which sub-field (if any) a structured response is
// unwrapped to. Path templates take pre-formatted string arguments.
type endpointSpec struct {
	path    string
	formats []Format
	unwrap  string
}

// endpoints is the contract table for every catalogued operation. Like the
// format registry it is fixed at startup and never mutated. OXML stays out
// of every allowed set; it is registered only so observation products can be
// named in format parsing.
var endpoints = map[Operation]endpointSpec{
	OpPoint:               {path: "points/%s,%s", formats: []Format{GeoJSON, JSONLD}},
	OpGridpoint:           {path: "gridpoints/%s/%s,%s", formats: []Format{GeoJSON, JSONLD}},
	OpPointForecast:       {path: "gridpoints/%s/%s,%s/forecast", formats: []Format{GeoJSON, JSONLD, DWML}},
	OpPointHourlyForecast: {path: "points/%s,%s/forecast/hourly", formats: []Format{GeoJSON, JSONLD}, unwrap: "periods"},
	OpPointStations:       {path: "points/%s,%s/stations", formats: []Format{GeoJSON, JSONLD}, unwrap: "observationStations"},
	OpAlerts:              {path: "alerts", formats: []Format{JSONLD, ATOM}},
	OpActiveAlerts:        {path: "alerts/active", formats: []Format{JSONLD, ATOM}},
	OpAlert:               {path: "alerts/%s", formats: []Format{GeoJSON, JSONLD, CAP}},
}

// AllowedFormats returns the formats the operation accepts, nil for an
// unknown operation.
func AllowedFormats(op Operation) []Format {
	spec, ok := endpoints[op]
	if !ok {
		return nil
	}
	return append([]Format(nil), spec.formats...)
}

// checkFormat validates a requested format against the operation's allowed
// set and returns its canonical spelling. The zero format always passes:
// the server default applies and no Accept header is sent.
func checkFormat(op Operation, f Format) (Format, error) {
	if f == "" {
		return "", nil
	}
	canonical, err := ParseFormat(string(f))
	if err != nil {
		return "", err
	}
	for _, allowed := range endpoints[op].formats {
		if canonical == allowed {
			return canonical, nil
		}
	}
	return "", &FormatNotAllowedError{Format: canonical, Operation: op, Allowed: AllowedFormats(op)}
}
