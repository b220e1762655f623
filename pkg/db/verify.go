package db

import "gorm.io/gorm"

// WriteOutcome classifies a write against a store that may silently no-op a
// mutation blocked by row-level policy instead of raising an error. Callers
// must branch on all three states; "no error" alone is not proof the write
// landed.
type WriteOutcome int

const (
	// WriteApplied means the store acknowledged the write and at least one
	// row was affected.
	WriteApplied WriteOutcome = iota
	// WriteDenied means the store reported no error but affected zero rows:
	// the mutation was silently rejected (policy block or missing row).
	WriteDenied
	// WriteFailed means the request itself errored (transport, SQL, driver).
	WriteFailed
)

// String implements fmt.Stringer.
func (w WriteOutcome) String() string {
	switch w {
	case WriteApplied:
		return "applied"
	case WriteDenied:
		return "denied"
	case WriteFailed:
		return "failed"
	}
	return "unknown"
}

// ClassifyWrite inspects a finished GORM statement and maps it onto a
// WriteOutcome plus the underlying error (nil unless WriteFailed).
func ClassifyWrite(res *gorm.DB) (WriteOutcome, error) {
	if res == nil {
		return WriteFailed, gorm.ErrInvalidDB
	}
	if res.Error != nil {
		return WriteFailed, res.Error
	}
	if res.RowsAffected == 0 {
		return WriteDenied, nil
	}
	return WriteApplied, nil
}
