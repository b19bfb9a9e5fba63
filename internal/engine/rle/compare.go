package rle

import "go.trai.ch/dupe/internal/core/domain"

// Compare reports whether a and b are duplicates under threshold.
//
// Differing pixels are accumulated and the walk stops as soon as the count
// reaches threshold. Forms of different dimensions are never duplicates.
// Unknown policies fall back to scanline.
func Compare(a, b *domain.EncodedForm, threshold int, policy domain.ComparePolicy) bool {
	if a == nil || b == nil || !a.SameSize(b) {
		return false
	}
	if policy == domain.PolicyLegacy {
		return compareLegacy(a, b, threshold)
	}
	return compareScanline(a, b, threshold)
}

// Distance returns the exact number of differing pixels between a and b.
// It returns -1 when either form is nil or the dimensions differ.
func Distance(a, b *domain.EncodedForm) int {
	if a == nil || b == nil || !a.SameSize(b) {
		return -1
	}
	total := 0
	for y := range a.Height {
		total += rowDistance(a.Row(y), b.Row(y), -1)
	}
	return total
}

func compareScanline(a, b *domain.EncodedForm, threshold int) bool {
	different := 0
	for y := range a.Height {
		different += rowDistance(a.Row(y), b.Row(y), threshold-different)
		if different > 0 && different >= threshold {
			return false
		}
	}
	return true
}

// rowDistance merges two runs of the same scanline span by span. A positive
// budget stops the walk once that many differing pixels are found.
func rowDistance(ra, rb []domain.Run, budget int) int {
	var (
		i, j       int
		remA, remB uint32
		different  int
	)
	if len(ra) > 0 {
		remA = ra[0].Length
	}
	if len(rb) > 0 {
		remB = rb[0].Length
	}

	for i < len(ra) && j < len(rb) {
		span := min(remA, remB)
		if ra[i].Color != rb[j].Color {
			different += int(span)
			if budget > 0 && different >= budget {
				return different
			}
		}

		remA -= span
		remB -= span
		if remA == 0 {
			i++
			if i < len(ra) {
				remA = ra[i].Length
			}
		}
		if remB == 0 {
			j++
			if j < len(rb) {
				remB = rb[j].Length
			}
		}
	}

	return different
}

// compareLegacy walks the flattened run lists positionally and charges the
// shorter run length for every color mismatch. Trailing runs of the longer
// list are ignored.
func compareLegacy(a, b *domain.EncodedForm, threshold int) bool {
	different := 0
	n := min(len(a.Runs), len(b.Runs))
	for i := range n {
		ra, rb := a.Runs[i], b.Runs[i]
		if ra.Color == rb.Color {
			continue
		}
		different += int(min(ra.Length, rb.Length))
		if different >= threshold {
			return false
		}
	}
	return true
}
