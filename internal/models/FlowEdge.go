package models

// FlowEdge aggregates all migration events between an ordered pair of
// communities. Value counts distinct migrating users, not raw events, so
// detector fan-out cannot inflate a single edge. Gap metrics are in days,
// velocity in events per 30-day month.
type FlowEdge struct {
	Source            string
	Target            string
	Value             int
	AvgGap            float64
	MedianGap         float64
	MinGap            float64
	MaxGap            float64
	MigrationVelocity float64
}
