package commands

import (
	"dealscout/internal/ingest"
	"dealscout/internal/sources/biznest"
	"dealscout/internal/sources/dealboard"
	"dealscout/internal/sources/flipnest"
	"dealscout/pkg/config"
	"dealscout/pkg/httputil"
	"dealscout/pkg/logger"
)

// buildAdapters wires one HTTP client per source and returns the
// adapters in canonical source order.
func buildAdapters(cfg *config.Config, log *logger.Logger) []ingest.SourceAdapter {
	newClient := func() *httputil.Client {
		return httputil.NewWithTimeout(log, cfg.Import.FetchTimeout).
			WithRateLimit(cfg.Import.RequestsPerSecond)
	}

	return []ingest.SourceAdapter{
		biznest.NewClient(cfg, newClient(), log),
		flipnest.NewClient(cfg, newClient(), log),
		dealboard.NewClient(cfg, newClient(), log),
	}
}
