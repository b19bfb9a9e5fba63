package domain

// Verdict is the outcome of a duplicate check.
type Verdict string

const (
	// VerdictDuplicate means at least one corpus entry is within the threshold.
	VerdictDuplicate Verdict = "duplicate"
	// VerdictNew means every evaluated corpus entry differs from the new image.
	VerdictNew Verdict = "new"
	// VerdictFailed means no verdict could be produced; the error explains why.
	VerdictFailed Verdict = "failed"
)

// ComparePolicy selects how two encoded forms are aligned during comparison.
type ComparePolicy string

const (
	// PolicyScanline aligns runs per scanline and counts exact differing pixels.
	PolicyScanline ComparePolicy = "scanline"
	// PolicyLegacy compares flattened run lists positionally.
	PolicyLegacy ComparePolicy = "legacy"
)

// Valid reports whether p names a known policy.
func (p ComparePolicy) Valid() bool {
	return p == PolicyScanline || p == PolicyLegacy
}

// EntryFailure records a corpus entry that could not be evaluated.
type EntryFailure struct {
	Path string
	Err  error
}

// ScanResult is the outcome of scanning a corpus for a duplicate.
type ScanResult struct {
	Duplicate bool
	// Match is the corpus entry whose comparison was observed first as a
	// duplicate. It is empty unless Duplicate is set.
	Match string
	// Evaluated counts corpus entries whose comparison completed.
	Evaluated int
	// Failures lists corpus entries that were skipped because of an error.
	Failures []EntryFailure
	// Statuses holds the state of every corpus entry when the scan returned.
	Statuses map[string]EntryStatus
}

// Verdict maps the result onto the caller-visible outcome.
func (r ScanResult) Verdict() Verdict {
	if r.Duplicate {
		return VerdictDuplicate
	}
	return VerdictNew
}
