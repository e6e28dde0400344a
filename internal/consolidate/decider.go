package consolidate

// Decision is the outcome chosen when a consolidated file already
// exists at the target path.
type Decision int

const (
	// Cancel aborts the run leaving everything untouched.
	Cancel Decision = iota
	// Regenerate overwrites the existing consolidated file.
	Regenerate
	// DeleteSourcesOnly keeps the existing consolidated file and only
	// removes the source files, after a separate confirmation.
	DeleteSourcesOnly
)

// Decider resolves the two user-facing decision points of a
// consolidation run. The engine itself never prompts; interactive
// implementations live in the command layer.
type Decider interface {
	// ExistingOutput is called when the target file already exists.
	ExistingOutput(filename string) (Decision, error)
	// ConfirmDelete is called before removing source files.
	ConfirmDelete(paths []string) (bool, error)
}

// Auto is a non-interactive Decider for scripted runs.
type Auto struct {
	// Overwrite regenerates an existing consolidated file instead of
	// cancelling.
	Overwrite bool
	// DeleteSources removes source files after a successful write.
	DeleteSources bool
}

func (a Auto) ExistingOutput(string) (Decision, error) {
	if a.Overwrite {
		return Regenerate, nil
	}
	return Cancel, nil
}

func (a Auto) ConfirmDelete([]string) (bool, error) {
	return a.DeleteSources, nil
}
