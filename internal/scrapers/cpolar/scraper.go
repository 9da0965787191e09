package cpolar

import (
	"context"

	"cpolar-export/internal/tunnel"
)

// Tunnels fetches the status page over the (already logged in) session and
// extracts its tunnel records.
func (c *Client) Tunnels(ctx context.Context) ([]tunnel.Record, error) {
	page, err := c.StatusPage(ctx)
	if err != nil {
		return nil, err
	}
	records, err := Extract(page)
	if err != nil {
		return nil, err
	}

	c.tel.ReportCount("scraper.tunnels", int64(len(records)))
	return records, nil
}
