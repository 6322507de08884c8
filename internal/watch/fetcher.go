package watch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/couchcryptid/nwswx"
)

// AlertFetcher polls the active-alerts feed with a fixed set of filters.
// It implements Fetcher.
type AlertFetcher struct {
	client *nwswx.Client
	params url.Values
}

// NewAlertFetcher creates a fetcher for the given filter query.
func NewAlertFetcher(client *nwswx.Client, q nwswx.AlertQuery) *AlertFetcher {
	return &AlertFetcher{client: client, params: q.Values()}
}

// Fetch requests the active alerts matching the configured filters.
func (f *AlertFetcher) Fetch(ctx context.Context) ([]nwswx.Alert, error) {
	res, err := f.client.ActiveAlerts(ctx, f.params, nwswx.JSONLD)
	if err != nil {
		return nil, err
	}

	var coll nwswx.AlertCollection
	if err := res.Decode(&coll); err != nil {
		return nil, fmt.Errorf("decode alert collection: %w", err)
	}
	return coll.Alerts, nil
}
