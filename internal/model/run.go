package model

import "time"

// RunSummary describes one scoring run.
type RunSummary struct {
	StartedAt      time.Time
	ID             string
	SourcesLoaded  int
	SourcesSkipped int
	Records        int
	RecordsSkipped int
	Wallets        int
	Bots           int
}
