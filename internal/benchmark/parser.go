package benchmark

import (
	"regexp"
	"strconv"
	"strings"
)

const labelSep = " - "

var (
	// Captures the label before "Statistics:", e.g. "MatMul (4x4) - C++ (Meta)"
	labelRegex = regexp.MustCompile(`^\s*(.*?)\s*Statistics:\s*$`)
	// Captures the integer iteration count
	iterRegex = regexp.MustCompile(`^\s*Iterations:\s+(\d+)\s*$`)
	// Captures the field name and its value in microseconds
	fieldRegex = regexp.MustCompile(`^\s*(Mean|Median|StdDev|Min|Max):\s+([\d.]+)\s+` + Unit + `\s*$`)
)

// block accumulates the fields of one statistics block until it terminates.
type block struct {
	label      string
	iterations int
	fields     map[string]float64
	hasIter    bool
}

func (b *block) complete() bool {
	if b == nil || b.label == "" || !b.hasIter {
		return false
	}
	_, mean := b.fields["Mean"]
	_, median := b.fields["Median"]
	return mean && median
}

func (b *block) record(source string) Record {
	op, tag := splitLabel(b.label)
	if source == "" {
		source = tag
	}
	return Record{
		Operation:  op,
		Source:     source,
		Iterations: b.iterations,
		MeanUs:     b.fields["Mean"],
		MedianUs:   b.fields["Median"],
		StdDevUs:   b.fields["StdDev"],
		MinUs:      b.fields["Min"],
		MaxUs:      b.fields["Max"],
	}
}

// splitLabel separates "MatMul (4x4) - PyTorch" into operation and tag.
func splitLabel(label string) (string, string) {
	i := strings.LastIndex(label, labelSep)
	if i <= 0 {
		return label, ""
	}
	return strings.TrimSpace(label[:i]), strings.TrimSpace(label[i+len(labelSep):])
}

// ParseOutput extracts one Record per complete statistics block in output.
//
// Fields are collected per block in any order; a block ends at a blank line,
// the next label line or end of input. Blocks without iterations, mean or
// median are dropped, as are lines that match no field. When source is empty
// the tag after the last " - " in the label is used instead.
func ParseOutput(output, source string) []Record {
	var (
		results []Record
		cur     *block
	)

	flush := func() {
		if cur.complete() {
			results = append(results, cur.record(source))
		}
		cur = nil
	}

	// Lines are unbounded; \r progress bars can run far past 64 KiB.
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if m := labelRegex.FindStringSubmatch(line); m != nil {
			flush()
			cur = &block{label: m[1], fields: make(map[string]float64)}
			continue
		}

		if cur == nil {
			continue
		}

		if m := iterRegex.FindStringSubmatch(line); m != nil {
			if val, err := strconv.Atoi(m[1]); err == nil {
				cur.iterations = val
				cur.hasIter = true
			}
			continue
		}

		if m := fieldRegex.FindStringSubmatch(line); m != nil {
			if val, err := strconv.ParseFloat(m[2], 64); err == nil {
				cur.fields[m[1]] = val
			}
		}
	}
	flush()

	return results
}
