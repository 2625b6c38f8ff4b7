// ABOUTME: Weekly training volume per body part bucket and trailing distribution.
// ABOUTME: Every bucket appears in every week of the matrix, zeros included.
package analytics

import (
	"math"
	"sort"
	"time"
)

// VolumeSet is one strength set joined with its exercise's body part name.
// Weight is in kilograms.
type VolumeSet struct {
	Date     time.Time
	BodyPart string
	Weight   float64
	Reps     int
}

// VolumeOptions controls the trailing windows and bucket fallback.
type VolumeOptions struct {
	Weeks             int
	DistributionWeeks int
	Normalizer        BodyPartNormalizer
}

// DefaultVolumeOptions covers 8 weeks of history and a 4-week distribution.
func DefaultVolumeOptions() VolumeOptions {
	return VolumeOptions{
		Weeks:             8,
		DistributionWeeks: 4,
		Normalizer:        NewBodyPartNormalizer(BucketOther),
	}
}

// WeeklyVolume is the per-bucket volume for one Sunday-anchored week.
type WeeklyVolume struct {
	WeekStart time.Time          `json:"week_start"`
	Volumes   map[Bucket]float64 `json:"volumes"`
	Total     float64            `json:"total"`
}

// BucketShare is one bucket's share of the distribution window.
type BucketShare struct {
	Bucket  Bucket  `json:"bucket"`
	Volume  float64 `json:"volume"`
	Percent int     `json:"percent"`
}

// VolumeReport is the weekly matrix, distribution, and derived insights.
type VolumeReport struct {
	Buckets      []Bucket       `json:"buckets"`
	Weeks        []WeeklyVolume `json:"weeks"`
	Distribution []BucketShare  `json:"distribution"`
	Insights     []string       `json:"insights"`
}

// ComputeVolumeReport aggregates weight x reps per bucket over the trailing
// weeks ending with today's week. Sets with no weight or reps are skipped.
func ComputeVolumeReport(sets []VolumeSet, today time.Time, opts VolumeOptions) VolumeReport {
	defaults := DefaultVolumeOptions()
	if opts.Weeks <= 0 {
		opts.Weeks = defaults.Weeks
	}
	if opts.DistributionWeeks <= 0 {
		opts.DistributionWeeks = defaults.DistributionWeeks
	}
	if opts.DistributionWeeks > opts.Weeks {
		opts.DistributionWeeks = opts.Weeks
	}
	buckets := opts.Normalizer.Buckets()

	current := WeekStart(today)
	first := current.AddDate(0, 0, -7*(opts.Weeks-1))
	distFrom := current.AddDate(0, 0, -7*(opts.DistributionWeeks-1))

	weeks := make([]WeeklyVolume, opts.Weeks)
	index := make(map[time.Time]int, opts.Weeks)
	for i := range weeks {
		ws := first.AddDate(0, 0, 7*i)
		weeks[i] = WeeklyVolume{WeekStart: ws, Volumes: make(map[Bucket]float64, len(buckets))}
		for _, b := range buckets {
			weeks[i].Volumes[b] = 0
		}
		index[ws] = i
	}

	dist := make(map[Bucket]float64, len(buckets))
	var distTotal float64
	for _, s := range sets {
		if s.Weight <= 0 || s.Reps <= 0 {
			continue
		}
		i, ok := index[WeekStart(s.Date)]
		if !ok {
			continue
		}
		bucket := opts.Normalizer.Normalize(s.BodyPart)
		volume := s.Weight * float64(s.Reps)
		weeks[i].Volumes[bucket] += volume
		weeks[i].Total += volume
		if !weeks[i].WeekStart.Before(distFrom) {
			dist[bucket] += volume
			distTotal += volume
		}
	}

	distribution := volumeDistribution(buckets, dist, distTotal)
	return VolumeReport{
		Buckets:      buckets,
		Weeks:        weeks,
		Distribution: distribution,
		Insights:     VolumeInsights(weeks, distribution, buckets),
	}
}

// volumeDistribution rounds each share to a whole percent, drops zero shares,
// and sorts by share descending with bucket order breaking ties.
func volumeDistribution(buckets []Bucket, volumes map[Bucket]float64, total float64) []BucketShare {
	out := []BucketShare{}
	if total <= 0 {
		return out
	}
	for _, b := range buckets {
		pct := int(math.Round(volumes[b] / total * 100))
		if pct == 0 {
			continue
		}
		out = append(out, BucketShare{Bucket: b, Volume: volumes[b], Percent: pct})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Percent > out[j].Percent })
	return out
}
