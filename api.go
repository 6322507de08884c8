package nwswx

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Point fetches the metadata document for a coordinate pair: forecast
// office, grid cell, zones, and time zone.
func (c *Client) Point(ctx context.Context, lat, lon float64, format Format) (*Result, error) {
	return c.get(ctx, OpPoint, []string{coord(lat), coord(lon)}, nil, format)
}

// Gridpoint fetches raw gridded data for one forecast office grid cell.
func (c *Client) Gridpoint(ctx context.Context, gridID string, gridX, gridY int, format Format) (*Result, error) {
	args := []string{url.PathEscape(gridID), strconv.Itoa(gridX), strconv.Itoa(gridY)}
	return c.get(ctx, OpGridpoint, args, nil, format)
}

// PointForecast fetches the forecast for a coordinate pair. The API only
// serves forecasts per office grid cell, so this first resolves the point's
// gridId/gridX/gridY and then requests the gridded forecast: two sequential
// calls. If the resolution call fails, its error is returned unchanged and
// the second request is never issued.
func (c *Client) PointForecast(ctx context.Context, lat, lon float64, format Format) (*Result, error) {
	// Validate up front so a bad format never costs the resolution
	// round-trip.
	if _, err := checkFormat(OpPointForecast, format); err != nil {
		return nil, err
	}

	res, err := c.Point(ctx, lat, lon, JSONLD)
	if err != nil {
		return nil, err
	}
	var p Point
	if err := res.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode point metadata: %w", err)
	}
	if p.GridID == "" {
		return nil, &MalformedResponseError{Field: "gridId"}
	}

	args := []string{url.PathEscape(p.GridID), strconv.Itoa(p.GridX), strconv.Itoa(p.GridY)}
	return c.get(ctx, OpPointForecast, args, nil, format)
}

// PointHourlyForecast fetches the hourly forecast for a coordinate pair.
// JSON-LD responses carry the period list directly.
func (c *Client) PointHourlyForecast(ctx context.Context, lat, lon float64, format Format) (*Result, error) {
	return c.get(ctx, OpPointHourlyForecast, []string{coord(lat), coord(lon)}, nil, format)
}

// PointStations fetches the observation stations near a coordinate pair.
// JSON-LD responses carry the station URL list directly.
func (c *Client) PointStations(ctx context.Context, lat, lon float64, format Format) (*Result, error) {
	return c.get(ctx, OpPointStations, []string{coord(lat), coord(lon)}, nil, format)
}

// Alerts fetches alerts filtered by the given query parameters, typically
// produced by AlertQuery.Values. A nil params fetches everything the server
// will page out.
func (c *Client) Alerts(ctx context.Context, params url.Values, format Format) (*Result, error) {
	return c.get(ctx, OpAlerts, nil, params, format)
}

// ActiveAlerts fetches the alerts currently in effect.
func (c *Client) ActiveAlerts(ctx context.Context, params url.Values, format Format) (*Result, error) {
	return c.get(ctx, OpActiveAlerts, nil, params, format)
}

// Alert fetches a single alert by its identifier.
func (c *Client) Alert(ctx context.Context, id string, format Format) (*Result, error) {
	return c.get(ctx, OpAlert, []string{url.PathEscape(id)}, nil, format)
}

// AlertQuery assembles the documented filter parameters for the alert
// listing endpoints. Zero-valued fields are omitted. The API rejects
// combined location filters, so set at most one of Point, Region, Area, or
// Zone.
type AlertQuery struct {
	Active      bool      // restrict the alerts listing to alerts in effect
	Start       time.Time // sent on or after
	End         time.Time // sent on or before
	Status      string    // actual, exercise, system, test, draft
	MessageType string    // alert, update, cancel
	ZoneType    string    // land or marine
	Point       string    // "lat,lon"
	Region      string    // marine region code
	Area        []string  // state or marine area codes
	Zone        []string  // NWS public/county zone IDs
	Urgency     string
	Severity    string
	Certainty   string
	Limit       int
}

// Values renders the query in the form the alerts endpoints expect.
func (q AlertQuery) Values() url.Values {
	v := url.Values{}
	if q.Active {
		v.Set("active", "1")
	}
	if !q.Start.IsZero() {
		v.Set("start", q.Start.Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		v.Set("end", q.End.Format(time.RFC3339))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.MessageType != "" {
		v.Set("type", q.MessageType)
	}
	if q.ZoneType != "" {
		v.Set("zone_type", q.ZoneType)
	}
	if q.Point != "" {
		v.Set("point", q.Point)
	}
	if q.Region != "" {
		v.Set("region", q.Region)
	}
	if len(q.Area) > 0 {
		v.Set("area", strings.Join(q.Area, ","))
	}
	if len(q.Zone) > 0 {
		v.Set("zone", strings.Join(q.Zone, ","))
	}
	if q.Urgency != "" {
		v.Set("urgency", q.Urgency)
	}
	if q.Severity != "" {
		v.Set("severity", q.Severity)
	}
	if q.Certainty != "" {
		v.Set("certainty", q.Certainty)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
