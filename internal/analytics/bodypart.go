// ABOUTME: Maps free-text body part names onto a small fixed vocabulary.
// ABOUTME: Rules are ordered substring matches; unmatched names go to a fallback bucket.
package analytics

import (
	"fmt"
	"strings"
)

// Bucket is a normalized body part used for volume aggregation.
type Bucket string

const (
	BucketChest     Bucket = "chest"
	BucketBack      Bucket = "back"
	BucketLegs      Bucket = "legs"
	BucketArms      Bucket = "arms"
	BucketShoulders Bucket = "shoulders"
	BucketCore      Bucket = "core"
	BucketOther     Bucket = "other"
)

// Buckets is the fixed vocabulary in display order.
var Buckets = []Bucket{BucketChest, BucketBack, BucketLegs, BucketArms, BucketShoulders, BucketCore}

type bucketRule struct {
	bucket  Bucket
	needles []string
}

// Order matters: "rear delt" must hit shoulders before anything else, and
// "abductor" must hit legs before core's "ab".
var bucketRules = []bucketRule{
	{BucketShoulders, []string{"shoulder", "delt"}},
	{BucketChest, []string{"chest", "pec"}},
	{BucketBack, []string{"back", "lat", "trap", "rhomboid"}},
	{BucketLegs, []string{"leg", "quad", "hamstring", "glute", "calf", "calves", "abductor", "adductor"}},
	{BucketArms, []string{"arm", "bicep", "tricep", "forearm"}},
	{BucketCore, []string{"core", "ab", "oblique"}},
}

// ParseBucket accepts one of the six buckets or "other".
func ParseBucket(s string) (Bucket, error) {
	b := Bucket(strings.ToLower(strings.TrimSpace(s)))
	if b == BucketOther {
		return b, nil
	}
	for _, known := range Buckets {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown body part bucket: %s", s)
}

// BodyPartNormalizer buckets raw names, sending unmatched ones to Fallback.
type BodyPartNormalizer struct {
	Fallback Bucket
}

// NewBodyPartNormalizer returns a normalizer; an empty fallback means BucketOther.
func NewBodyPartNormalizer(fallback Bucket) BodyPartNormalizer {
	if fallback == "" {
		fallback = BucketOther
	}
	return BodyPartNormalizer{Fallback: fallback}
}

// Normalize maps a raw body part name to a bucket.
func (n BodyPartNormalizer) Normalize(raw string) Bucket {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name != "" {
		for _, rule := range bucketRules {
			for _, needle := range rule.needles {
				if strings.Contains(name, needle) {
					return rule.bucket
				}
			}
		}
	}
	return n.fallback()
}

// Buckets lists every bucket this normalizer can produce, in display order.
func (n BodyPartNormalizer) Buckets() []Bucket {
	out := append([]Bucket(nil), Buckets...)
	if n.fallback() == BucketOther {
		out = append(out, BucketOther)
	}
	return out
}

func (n BodyPartNormalizer) fallback() Bucket {
	if n.Fallback == "" {
		return BucketOther
	}
	return n.Fallback
}
