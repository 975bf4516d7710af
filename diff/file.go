package diff

// FileDiff summarizes all changes to a single file.
type FileDiff struct {
	// OldName is the path of the original file (with a/ prefix stripped).
	OldName string

	// NewName is the path of the new file (with b/ prefix stripped).
	NewName string

	// Added is the number of added lines.
	Added int

	// Deleted is the number of deleted lines.
	Deleted int

	// IsBinary is true if this is a binary file.
	IsBinary bool

	// IsNew is true if this is a new file.
	IsNew bool

	// IsDeleted is true if this file is being deleted.
	IsDeleted bool

	// IsRenamed is true if this file was renamed.
	IsRenamed bool
}

// Path returns the canonical file path.
// Uses OldName for deletions, NewName otherwise.
func (f *FileDiff) Path() string {
	if f.IsDeleted {
		return f.OldName
	}

	return f.NewName
}

// Stats returns the addition and deletion counts.
func (f *FileDiff) Stats() (added, deleted int) {
	return f.Added, f.Deleted
}
