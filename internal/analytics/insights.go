// ABOUTME: Plain-language observations derived from a volume report.
// ABOUTME: Always returns at least one line and never fails.
package analytics

import (
	"fmt"
	"math"
	"strings"
)

const (
	weekOverWeekThreshold = 20.0
	imbalanceThreshold    = 35
	balancedShare         = 15
	balancedBuckets       = 4
)

// EncouragementInsight is emitted when no other observation applies.
const EncouragementInsight = "Keep logging your workouts to unlock more insights."

// VolumeInsights compares the two most recent weeks per bucket and inspects
// the distribution for imbalance or balance.
func VolumeInsights(weeks []WeeklyVolume, distribution []BucketShare, buckets []Bucket) []string {
	var insights []string

	if len(weeks) >= 2 {
		prev, cur := weeks[len(weeks)-2], weeks[len(weeks)-1]
		for _, b := range buckets {
			before, after := prev.Volumes[b], cur.Volumes[b]
			if before <= 0 {
				continue
			}
			change := (after - before) / before * 100
			if math.Abs(change) < weekOverWeekThreshold {
				continue
			}
			direction := "up"
			if change < 0 {
				direction = "down"
			}
			insights = append(insights, fmt.Sprintf("%s volume is %s %.0f%% from last week.",
				displayBucket(b), direction, math.Abs(change)))
		}
	}

	if len(distribution) > 0 && distribution[0].Percent >= imbalanceThreshold {
		top := distribution[0]
		insights = append(insights, fmt.Sprintf("%s makes up %d%% of your recent volume; consider balancing other body parts.",
			displayBucket(top.Bucket), top.Percent))
	}

	balanced := 0
	for _, share := range distribution {
		if share.Percent >= balancedShare {
			balanced++
		}
	}
	if balanced >= balancedBuckets {
		insights = append(insights, "Your training is well-balanced across body parts.")
	}

	if len(insights) == 0 {
		insights = append(insights, EncouragementInsight)
	}
	return insights
}

func displayBucket(b Bucket) string {
	s := string(b)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
