package models

// SavedReturn is a FormState persisted under a user's email. There is at
// most one per email; saving again overwrites it.
type SavedReturn struct {
	// ID is the unique identifier for the record (UUID format). It is
	// assigned on the first save and kept on every overwrite.
	ID string

	// Email is the owner's email address (unique).
	Email string

	// State is the snapshot of the return.
	State FormState

	// LastModified is the Unix timestamp of the most recent save.
	LastModified int64
}
