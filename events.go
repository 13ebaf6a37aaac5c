package signalscan

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// EventFlag classifies a cluster's volume relative to the run's volume
// distribution.
type EventFlag string

const (
	EventNormal   EventFlag = "Normal"
	EventEmerging EventFlag = "Emerging Event"
	EventMajor    EventFlag = "Major Event"
)

// DetectEvents flags anomalously large clusters. A cluster is a Major Event
// above mean + 1.5 population-std volumes, an Emerging Event above
// mean + 0.75 population-std. The thresholds are relative to the current
// run only: the same volume can be Normal in one run and Major in another.
func DetectEvents(volumes map[int]int) map[int]EventFlag {
	flags := make(map[int]EventFlag, len(volumes))
	if len(volumes) == 0 {
		return flags
	}

	counts := make([]float64, 0, len(volumes))
	for _, v := range volumes {
		counts = append(counts, float64(v))
	}

	mean := stat.Mean(counts, nil)
	std := popStdDev(counts, mean)

	for cid, v := range volumes {
		vol := float64(v)
		switch {
		case vol > mean+std*1.5:
			flags[cid] = EventMajor
		case vol > mean+std*0.75:
			flags[cid] = EventEmerging
		default:
			flags[cid] = EventNormal
		}
	}
	return flags
}

// popStdDev is the population standard deviation (divides by n, not n-1).
func popStdDev(xs []float64, mean float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	variance := 0.0
	for _, x := range xs {
		diff := x - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(xs)))
}
