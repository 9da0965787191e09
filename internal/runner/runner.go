// Package runner sequences one full run: login, status fetch, extraction,
// filtering and whichever exports the configuration asks for.
package runner

import (
	"context"
	"fmt"

	"cpolar-export/internal/assert"
	"cpolar-export/internal/components/chrono"
	"cpolar-export/internal/components/telemetry"
	"cpolar-export/internal/config"
	"cpolar-export/internal/export"
	"cpolar-export/internal/scrapers/cpolar"
	"cpolar-export/internal/tunnel"
)

type Runner struct {
	// BaseUrl is the dashboard origin, cpolar.BaseUrl outside of tests.
	BaseUrl string

	clock chrono.API
	tel   telemetry.API
}

func New(clock chrono.API, tel telemetry.API) Runner {
	assert.NotNil(clock)
	assert.NotNil(tel)

	return Runner{
		BaseUrl: cpolar.BaseUrl,
		clock:   clock,
		tel:     tel,
	}
}

// Run performs one synchronous scrape. Every export artifact is rendered from
// the identical filtered list, and that list is returned whether or not any
// export was requested. Errors are terminal: nothing is retried and no
// partial artifact is written.
func (r Runner) Run(ctx context.Context, cfg config.Config) ([]tunnel.Record, error) {
	client, err := cpolar.NewClient(r.BaseUrl, r.tel)
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx, cfg.Email, cfg.Password); err != nil {
		return nil, err
	}

	records, err := client.Tunnels(ctx)
	if err != nil {
		return nil, err
	}

	records = tunnel.FilterByName(records, cfg.Filter)

	if cfg.OutJSON != "" {
		if err := export.SaveJSON(cfg.OutJSON, records); err != nil {
			return nil, fmt.Errorf("write json export: %w", err)
		}
	}
	if cfg.OutCSV != "" {
		if err := export.SaveCSV(cfg.OutCSV, records); err != nil {
			return nil, fmt.Errorf("write csv export: %w", err)
		}
	}
	if cfg.OutHTML != "" {
		if err := export.SaveReport(cfg.OutHTML, records, r.clock.Now()); err != nil {
			return nil, fmt.Errorf("write html report: %w", err)
		}
	}

	return records, nil
}
