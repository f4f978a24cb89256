package core

import "sort"

// TotalAmount sums the amounts of a filtered record set. Pure reduction
// over the input slice; safe under concurrent request handling.
func TotalAmount(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

// MonthBuckets collects the distinct year-month prefixes (the first seven
// characters of each YYYY-MM-DD date) across the full record set, newest
// first. Duplicates collapse. Used to populate the time-range selector.
func MonthBuckets(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	var buckets []string
	for _, r := range records {
		if len(r.Date) < 7 {
			continue
		}
		ym := r.Date[:7]
		if _, dup := seen[ym]; dup {
			continue
		}
		seen[ym] = struct{}{}
		buckets = append(buckets, ym)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(buckets)))
	return buckets
}
