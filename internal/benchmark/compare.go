package benchmark

import (
	"fmt"
	"sort"
)

// Speedup relates one operation measured by two sources. Ratio is
// Other.MeanUs / Reference.MeanUs, so a ratio above 1 means the reference
// was faster.
type Speedup struct {
	Operation string
	Reference Record
	Other     Record
	Ratio     float64
}

// Faster reports whether the reference beat the other source.
func (s Speedup) Faster() bool {
	return s.Ratio > 1.0
}

func (s Speedup) String() string {
	verdict := "slower"
	if s.Faster() {
		verdict = "faster"
	}
	return fmt.Sprintf("%s: %.2fx %s", s.Operation, s.Ratio, verdict)
}

// Group collects records by operation, keeping encounter order per group.
func Group(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Operation] = append(groups[r.Operation], r)
	}
	return groups
}

// Operations returns the sorted union of operation labels across all sets.
func Operations(sets ...[]Record) []string {
	seen := make(map[string]struct{})
	var ops []string
	for _, set := range sets {
		for _, r := range set {
			if _, ok := seen[r.Operation]; !ok {
				seen[r.Operation] = struct{}{}
				ops = append(ops, r.Operation)
			}
		}
	}
	sort.Strings(ops)
	return ops
}

// Compare returns a speedup for every operation present in both sets, using
// the first record of each group. A zero reference mean yields +Inf.
func Compare(reference, other []Record) []Speedup {
	refByOp := Group(reference)
	otherByOp := Group(other)

	var speedups []Speedup
	for _, op := range Operations(reference, other) {
		refs, ok := refByOp[op]
		if !ok {
			continue
		}
		others, ok := otherByOp[op]
		if !ok {
			continue
		}
		ref, oth := refs[0], others[0]
		speedups = append(speedups, Speedup{
			Operation: op,
			Reference: ref,
			Other:     oth,
			Ratio:     oth.MeanUs / ref.MeanUs,
		})
	}
	return speedups
}
