package utils

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Verbose controls whether timing statistics and log lines are printed.
// Set to false to suppress output.
var Verbose = true

// Output is the writer where timing statistics are printed.
// Defaults to os.Stdout.
var Output io.Writer = os.Stdout

// TimingStats holds timing information for an inference run
type TimingStats struct {
	TotalTime   time.Duration
	LoadTime    time.Duration
	BuildTime   time.Duration
	PredictTime time.Duration
	Predictions int
	Failures    int
}

// Observe adds one predict call to the totals.
func (s *TimingStats) Observe(d time.Duration, err error) {
	s.PredictTime += d
	s.Predictions++
	if err != nil {
		s.Failures++
	}
}

// PrintTimingStats prints detailed timing statistics.
// Respects the Verbose flag - does nothing if Verbose is false.
func PrintTimingStats(stats *TimingStats) {
	if !Verbose {
		return
	}
	fmt.Fprintln(Output, "\n=== TIMING STATISTICS ===")
	fmt.Fprintf(Output, "Total time: %v\n", stats.TotalTime)
	fmt.Fprintf(Output, "Predictions: %d (%d failed)\n", stats.Predictions, stats.Failures)
	fmt.Fprintln(Output, "\nBreakdown by operation:")
	fmt.Fprintf(Output, "  Weight loading: %v (%.1f%%)\n", stats.LoadTime, percent(stats.LoadTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Network build: %v (%.1f%%)\n", stats.BuildTime, percent(stats.BuildTime, stats.TotalTime))
	fmt.Fprintf(Output, "  Predict: %v (%.1f%%)\n", stats.PredictTime, percent(stats.PredictTime, stats.TotalTime))
	if stats.Predictions > 0 {
		avg := stats.PredictTime / time.Duration(stats.Predictions)
		fmt.Fprintln(Output, "\nPerformance metrics:")
		fmt.Fprintf(Output, "  Average predict time: %v (%.1fµs)\n", avg, DurationUS(avg))
	}
}

func percent(part, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// DurationUS converts any time.Duration to micro-seconds as float64
func DurationUS(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1_000.0
}
