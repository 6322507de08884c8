package nwswx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builderClient() *Client {
	return &Client{
		useragentID: "test@example.com",
		apiHost:     DefaultAPIHost,
		baseURL:     "https://" + DefaultAPIHost,
	}
}

func TestBuildRequest_UserAgentLiteral(t *testing.T) {
	c := builderClient()

	desc, err := c.buildRequest(OpPoint, []string{"39.0693", "-94.6716"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "nwswx 0.4.0 [test@example.com]", desc.userAgent)
}

func TestBuildRequest_AcceptOnlyWhenFormatRequested(t *testing.T) {
	c := builderClient()

	desc, err := c.buildRequest(OpPoint, []string{"39.0693", "-94.6716"}, nil, "")
	require.NoError(t, err)
	assert.Empty(t, desc.accept, "no format means no Accept override")
	assert.Empty(t, desc.format)

	desc, err = c.buildRequest(OpPoint, []string{"39.0693", "-94.6716"}, nil, JSONLD)
	require.NoError(t, err)
	assert.Equal(t, "application/ld+json", desc.accept)
	assert.Equal(t, JSONLD, desc.format)
}

func TestBuildRequest_CanonicalizesFormat(t *testing.T) {
	c := builderClient()

	desc, err := c.buildRequest(OpPoint, []string{"39.0693", "-94.6716"}, nil, Format("GeoJSON"))
	require.NoError(t, err)
	assert.Equal(t, GeoJSON, desc.format)
	assert.Equal(t, "application/geo+json", desc.accept)
}

func TestBuildRequest_PathTemplates(t *testing.T) {
	c := builderClient()

	tests := []struct {
		op   Operation
		args []string
		want string
	}{
		{OpPoint, []string{"39.0693", "-94.6716"}, "https://api.weather.gov/points/39.0693,-94.6716"},
		{OpGridpoint, []string{"EAX", "31", "80"}, "https://api.weather.gov/gridpoints/EAX/31,80"},
		{OpPointForecast, []string{"EAX", "31", "80"}, "https://api.weather.gov/gridpoints/EAX/31,80/forecast"},
		{OpPointHourlyForecast, []string{"39.0693", "-94.6716"}, "https://api.weather.gov/points/39.0693,-94.6716/forecast/hourly"},
		{OpPointStations, []string{"39.0693", "-94.6716"}, "https://api.weather.gov/points/39.0693,-94.6716/stations"},
		{OpAlerts, nil, "https://api.weather.gov/alerts"},
		{OpActiveAlerts, nil, "https://api.weather.gov/alerts/active"},
		{OpAlert, []string{"NWS-IDP-PROD-2202530-2064731"}, "https://api.weather.gov/alerts/NWS-IDP-PROD-2202530-2064731"},
	}

	for _, tc := range tests {
		desc, err := c.buildRequest(tc.op, tc.args, nil, "")
		require.NoError(t, err, "operation %q", tc.op)
		assert.Equal(t, tc.want, desc.url, "operation %q", tc.op)
	}
}

func TestBuildRequest_QueryParameters(t *testing.T) {
	c := builderClient()

	params := url.Values{}
	params.Set("area", "KS")
	params.Set("active", "1")

	desc, err := c.buildRequest(OpActiveAlerts, nil, params, "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.weather.gov/alerts/active?active=1&area=KS", desc.url)
}

func TestBuildRequest_RejectsDisallowedFormatBeforeURL(t *testing.T) {
	c := builderClient()

	_, err := c.buildRequest(OpAlerts, nil, nil, GeoJSON)
	require.Error(t, err)

	var notAllowed *FormatNotAllowedError
	assert.ErrorAs(t, err, &notAllowed)
}

func TestCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{39.0693, "39.0693"},
		{-94.6716, "-94.6716"},
		{39, "39"},
		{-0.5, "-0.5"},
		{39.07654321, "39.07654321"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, coord(tc.in))
	}
}
