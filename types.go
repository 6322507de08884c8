package nwswx

import "time"

// Typed views of the JSON-LD documents the structured endpoints serve.
// They cover the stable, documented fields; anything exotic stays
// reachable through Result.Decode into a caller-defined shape.

// Point is the point metadata document: the bridge from a coordinate pair
// to the office grid cell every forecast product hangs off.
type Point struct {
	ID               string           `json:"@id"`
	CWA              string           `json:"cwa"`
	ForecastOffice   string           `json:"forecastOffice"`
	GridID           string           `json:"gridId"`
	GridX            int              `json:"gridX"`
	GridY            int              `json:"gridY"`
	ForecastZone     string           `json:"forecastZone"`
	County           string           `json:"county"`
	FireWeatherZone  string           `json:"fireWeatherZone"`
	TimeZone         string           `json:"timeZone"`
	RadarStation     string           `json:"radarStation"`
	RelativeLocation RelativeLocation `json:"relativeLocation"`
}

// RelativeLocation names the place a point sits near.
type RelativeLocation struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Forecast is the gridded forecast document.
type Forecast struct {
	Units             string            `json:"units"`
	ForecastGenerator string            `json:"forecastGenerator"`
	GeneratedAt       time.Time         `json:"generatedAt"`
	UpdateTime        time.Time         `json:"updateTime"`
	ValidTimes        string            `json:"validTimes"`
	Elevation         QuantitativeValue `json:"elevation"`
	Periods           []ForecastPeriod  `json:"periods"`
}

// QuantitativeValue is a measured value with its WMO unit code.
type QuantitativeValue struct {
	UnitCode string  `json:"unitCode"`
	Value    float64 `json:"value"`
}

// ForecastPeriod is one named window of a forecast, half-day windows for
// the standard product ("Tonight", "Friday") and hour windows for the
// hourly product.
type ForecastPeriod struct {
	Number           int       `json:"number"`
	Name             string    `json:"name"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	IsDaytime        bool      `json:"isDaytime"`
	Temperature      int       `json:"temperature"`
	TemperatureUnit  string    `json:"temperatureUnit"`
	TemperatureTrend string    `json:"temperatureTrend"`
	WindSpeed        string    `json:"windSpeed"`
	WindDirection    string    `json:"windDirection"`
	Icon             string    `json:"icon"`
	ShortForecast    string    `json:"shortForecast"`
	DetailedForecast string    `json:"detailedForecast"`
}

// AlertCollection is the alert listing document; the alerts ride in @graph.
type AlertCollection struct {
	Title   string    `json:"title"`
	Updated time.Time `json:"updated"`
	Alerts  []Alert   `json:"@graph"`
}

// Alert is one warning, watch, advisory, or statement.
type Alert struct {
	ID            string     `json:"id"`
	AreaDesc      string     `json:"areaDesc"`
	AffectedZones []string   `json:"affectedZones"`
	Sent          time.Time  `json:"sent"`
	Effective     time.Time  `json:"effective"`
	Onset         *time.Time `json:"onset"`
	Expires       time.Time  `json:"expires"`
	Ends          *time.Time `json:"ends"`
	Status        string     `json:"status"`
	MessageType   string     `json:"messageType"`
	Category      string     `json:"category"`
	Severity      string     `json:"severity"`
	Certainty     string     `json:"certainty"`
	Urgency       string     `json:"urgency"`
	Event         string     `json:"event"`
	Sender        string     `json:"sender"`
	SenderName    string     `json:"senderName"`
	Headline      string     `json:"headline"`
	Description   string     `json:"description"`
	Instruction   string     `json:"instruction"`
	Response      string     `json:"response"`
}
