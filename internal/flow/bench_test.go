package flow

import (
	"fmt"
	"testing"

	"mfd/internal/models"
)

// BenchmarkDetect measures migration detection over users with growing
// community counts.
func BenchmarkDetect(b *testing.B) {
	for _, n := range []int{5, 20, 50} {
		b.Run(fmt.Sprintf("communities=%d", n), func(b *testing.B) {
			d := NewDetector(detectorConfig(5, 1, 365, 1))
			records := make([]*models.PostingRecord, n)
			for i := 0; i < n; i++ {
				start := i * 20
				records[i] = record("alice", fmt.Sprintf("c%d", i), start, start+10, 5)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				d.Detect(records)
			}
		})
	}
}

// BenchmarkAggregate measures edge aggregation over growing event counts.
func BenchmarkAggregate(b *testing.B) {
	for _, n := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("events=%d", n), func(b *testing.B) {
			events := make([]*models.MigrationEvent, n)
			for i := 0; i < n; i++ {
				events[i] = event(
					fmt.Sprintf("user_%d", i%500),
					fmt.Sprintf("c%d", i%20),
					fmt.Sprintf("c%d", (i%20)+1),
					(i%30)+1, i%365,
				)
			}

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Aggregate(events)
			}
		})
	}
}

// BenchmarkBridgeCentrality measures the all-pairs BFS over a linear chain.
func BenchmarkBridgeCentrality(b *testing.B) {
	for _, n := range []int{10, 50, 100} {
		b.Run(fmt.Sprintf("nodes=%d", n), func(b *testing.B) {
			pairs := make([][2]string, n-1)
			for i := 0; i < n-1; i++ {
				pairs[i] = [2]string{fmt.Sprintf("c%d", i), fmt.Sprintf("c%d", i+1)}
			}
			a := NewAnalytics(chainGraph(pairs...))

			b.ResetTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				a.BridgeCentrality()
			}
		})
	}
}
