package books

import "fmt"

// Unit names the period the weeks-on-list histogram is labeled with.
type Unit string

const (
	UnitWeeks  Unit = "Weeks"
	UnitMonths Unit = "Months"
)

// UnitFor picks the histogram unit from the first loaded category.
// Anything other than a weekly first entry, including none, is Months.
func UnitFor(cats []Category) Unit {
	if len(cats) > 0 && cats[0].UpdateFrequency == Weekly {
		return UnitWeeks
	}
	return UnitMonths
}

// FrequencyBucket is one slice of the weeks-on-list histogram.
type FrequencyBucket struct {
	ID         int
	RangeLabel string
	Count      int
}

type bucketDef struct {
	max   int // inclusive upper bound; -1 means unbounded
	label string
}

// The 6-10 bucket is labeled "6-11"; the label is kept as published.
var bucketDefs = []bucketDef{
	{max: 0, label: "0 %s"},
	{max: 5, label: "1-5 %s"},
	{max: 10, label: "6-11 %s"},
	{max: 20, label: "11-20 %s"},
	{max: 40, label: "21-40 %s"},
	{max: -1, label: "41+ %s"},
}

// BucketCount is the number of fixed histogram buckets.
var BucketCount = len(bucketDefs)

// bucketIndex returns the first bucket whose upper bound covers weeks.
func bucketIndex(weeks int) int {
	for i, d := range bucketDefs {
		if d.max >= 0 && weeks <= d.max {
			return i
		}
	}
	return len(bucketDefs) - 1
}

// Tally counts books per bucket without filtering.
func Tally(bks []Book, unit Unit) []FrequencyBucket {
	out := make([]FrequencyBucket, len(bucketDefs))
	for i, d := range bucketDefs {
		out[i] = FrequencyBucket{ID: i, RangeLabel: fmt.Sprintf(d.label, unit)}
	}
	for _, b := range bks {
		out[bucketIndex(b.WeeksOnList)].Count++
	}
	return out
}

// Bucketize groups books into the fixed buckets, in ID order, and drops
// every bucket holding exactly one book. Empty buckets are kept.
func Bucketize(bks []Book, unit Unit) []FrequencyBucket {
	all := Tally(bks, unit)
	out := make([]FrequencyBucket, 0, len(all))
	for _, b := range all {
		if b.Count == 1 {
			continue
		}
		out = append(out, b)
	}
	return out
}
