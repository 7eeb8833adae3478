package domain

import (
	"sort"
	"strconv"
)

// SortRecords orders display-keyed records per the definition's sort spec:
// descending by the sort field, stable so records with equal keys keep their
// store-native relative order. Records missing the field sort as the zero
// value and must not crash the comparison.
func (d *Definition) SortRecords(recs []Record) {
	if d.Sort.Field == "" {
		return
	}
	if d.Sort.Numeric {
		sort.SliceStable(recs, func(i, j int) bool {
			return numericValue(recs[i][d.Sort.Field]) > numericValue(recs[j][d.Sort.Field])
		})
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return stringValue(recs[i][d.Sort.Field]) > stringValue(recs[j][d.Sort.Field])
	})
}

// numericValue coerces the mixed numeric shapes a record can carry: native
// ints, float64 from JSON decoding, or numeric strings. Anything else is 0.
func numericValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return 0
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
