package domain

// EntryStatus represents the lifecycle state of one corpus entry during a scan.
type EntryStatus string

const (
	// EntryPending indicates the entry is waiting for a worker.
	EntryPending EntryStatus = "pending"
	// EntryRunning indicates the entry is being loaded or compared.
	EntryRunning EntryStatus = "running"
	// EntryMatched indicates the entry is a duplicate of the new image.
	EntryMatched EntryStatus = "matched"
	// EntryDistinct indicates the entry differs from the new image.
	EntryDistinct EntryStatus = "distinct"
	// EntryFailed indicates the entry could not be evaluated.
	EntryFailed EntryStatus = "failed"
	// EntryCancelled indicates the entry was skipped because a match was already found.
	EntryCancelled EntryStatus = "cancelled"
)

// IsTerminal checks if a status is a terminal state.
func (s EntryStatus) IsTerminal() bool {
	switch s {
	case EntryMatched, EntryDistinct, EntryFailed, EntryCancelled:
		return true
	default:
		return false
	}
}
