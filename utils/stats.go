package utils

import (
	"time"

	"github.com/sheikhrachel/go-organism/model"
)

// Stats summarizes a generated sequence
type Stats struct {
	TotalGenerations  int
	Population        []int
	AveragePopulation float64
	PeakPopulation    int
	ExtinctAt         int // first generation with no living cells, -1 if never
	Duration          time.Duration
}

// NewStats computes population figures for seq; duration is how long it took to build
func NewStats(seq model.Sequence, duration time.Duration) *Stats {
	s := &Stats{
		TotalGenerations: seq.Len(),
		Population:       make([]int, 0, seq.Len()),
		ExtinctAt:        -1,
		Duration:         duration,
	}

	total := 0
	for i, g := range seq {
		living := g.CountLivingCells()
		s.Population = append(s.Population, living)
		total += living
		s.PeakPopulation = max(s.PeakPopulation, living)
		if living == 0 && s.ExtinctAt < 0 {
			s.ExtinctAt = i
		}
	}
	if seq.Len() > 0 {
		s.AveragePopulation = float64(total) / float64(seq.Len())
	}
	return s
}

// GenerationsPerSecond returns throughput, or 0 when no time was recorded
func (s *Stats) GenerationsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalGenerations) / s.Duration.Seconds()
}
