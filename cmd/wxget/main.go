// Command wxget fetches forecasts and alerts from the National Weather
// Service API and prints them as tables, or as raw payloads when a
// non-JSON-LD format is requested.
//
// Usage:
//
//	wxget --useragent-id you@example.com forecast 39.0693,-94.6716
//	wxget --useragent-id you@example.com --format dwml forecast 39.0693,-94.6716
//	wxget --useragent-id you@example.com hourly 39.0693,-94.6716
//	wxget --useragent-id you@example.com alerts --area KS --severity Severe
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/couchcryptid/nwswx"
)

const usage = `wxget fetches forecasts and alerts from the National Weather Service API.

Usage:

  wxget [flags] forecast LAT,LON
  wxget [flags] hourly LAT,LON
  wxget [flags] alerts

Flags:
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "wxget: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("wxget", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}

	useragentID := flags.String("useragent-id", os.Getenv("NWS_USERAGENT_ID"),
		"contact identity sent with every request (defaults to $NWS_USERAGENT_ID)")
	formatName := flags.String("format", "", "response format: geojson, jsonld, dwml, cap, atom")
	apiHost := flags.String("api-host", nwswx.DefaultAPIHost, "alternate API host")
	timeout := flags.Duration("timeout", 10*time.Second, "request timeout")
	area := flags.StringSlice("area", nil, "alerts: filter by state or marine area codes")
	zone := flags.StringSlice("zone", nil, "alerts: filter by NWS zone IDs")
	point := flags.String("point", "", "alerts: filter by \"lat,lon\"")
	severity := flags.String("severity", "", "alerts: filter by severity")
	all := flags.Bool("all", false, "alerts: include inactive and expired alerts")
	periods := flags.Int("periods", 12, "hourly: number of periods to print, 0 for all")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errors.New("a mode is required: forecast, hourly, or alerts")
	}

	if *useragentID == "" {
		return errors.New("--useragent-id or NWS_USERAGENT_ID is required")
	}

	var format nwswx.Format
	if *formatName != "" {
		f, err := nwswx.ParseFormat(*formatName)
		if err != nil {
			return err
		}
		format = f
	}

	client, err := nwswx.New(*useragentID,
		nwswx.WithAPIHost(*apiHost),
		nwswx.WithTimeout(*timeout),
	)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch mode := rest[0]; mode {
	case "forecast":
		return runForecast(ctx, client, rest[1:], format, false, 0)
	case "hourly":
		return runForecast(ctx, client, rest[1:], format, true, *periods)
	case "alerts":
		q := nwswx.AlertQuery{Area: *area, Zone: *zone, Point: *point, Severity: *severity}
		return runAlerts(ctx, client, q, format, *all)
	default:
		return fmt.Errorf("unknown mode %q, expected forecast, hourly, or alerts", mode)
	}
}

func runForecast(ctx context.Context, client *nwswx.Client, args []string, format nwswx.Format, hourly bool, limit int) error {
	if len(args) != 1 {
		return errors.New("expected one LAT,LON argument")
	}
	lat, lon, err := parsePoint(args[0])
	if err != nil {
		return err
	}

	if format == "" {
		format = nwswx.JSONLD
	}

	var res *nwswx.Result
	if hourly {
		res, err = client.PointHourlyForecast(ctx, lat, lon, format)
	} else {
		res, err = client.PointForecast(ctx, lat, lon, format)
	}
	if err != nil {
		return err
	}

	if !res.Structured() {
		fmt.Println(res.Text())
		return nil
	}

	if hourly {
		var periods []nwswx.ForecastPeriod
		if err := res.Decode(&periods); err != nil {
			return err
		}
		if limit > 0 && len(periods) > limit {
			periods = periods[:limit]
		}
		return printPeriods(periods)
	}

	var f nwswx.Forecast
	if err := res.Decode(&f); err != nil {
		return err
	}
	return printPeriods(f.Periods)
}

func runAlerts(ctx context.Context, client *nwswx.Client, q nwswx.AlertQuery, format nwswx.Format, all bool) error {
	if format == "" {
		format = nwswx.JSONLD
	}

	var res *nwswx.Result
	var err error
	if all {
		res, err = client.Alerts(ctx, q.Values(), format)
	} else {
		res, err = client.ActiveAlerts(ctx, q.Values(), format)
	}
	if err != nil {
		return err
	}

	if !res.Structured() {
		fmt.Println(res.Text())
		return nil
	}

	var coll nwswx.AlertCollection
	if err := res.Decode(&coll); err != nil {
		return err
	}
	if len(coll.Alerts) == 0 {
		fmt.Println("no alerts")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EVENT\tSEVERITY\tEXPIRES\tHEADLINE")
	for _, a := range coll.Alerts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			a.Event, a.Severity, a.Expires.Local().Format("Jan 2 15:04"), a.Headline)
	}
	return w.Flush()
}

func printPeriods(periods []nwswx.ForecastPeriod) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tTEMP\tWIND\tFORECAST")
	for _, p := range periods {
		name := p.Name
		if name == "" {
			name = p.StartTime.Local().Format("Mon 15:04")
		}
		fmt.Fprintf(w, "%s\t%d°%s\t%s %s\t%s\n",
			name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.ShortForecast)
	}
	return w.Flush()
}

func parsePoint(s string) (lat, lon float64, err error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q, expected LAT,LON", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonStr)
	}
	return lat, lon, nil
}
