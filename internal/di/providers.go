package di

import (
	"mfd/internal/providers"
	"mfd/internal/services"
)

// provideStatsSource narrows the analysis service to the counters the
// metrics gauges poll.
func provideStatsSource(service services.AnalysisServiceInterface) providers.AnalysisStatsSource {
	return service
}
