package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/starford/brackets/internal/consolidate"
)

// promptDecider implements consolidate.Decider with interactive
// terminal prompts.
type promptDecider struct{}

func (promptDecider) ExistingOutput(filename string) (consolidate.Decision, error) {
	decision := consolidate.Cancel
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[consolidate.Decision]().
				Title(fmt.Sprintf("%s already exists", filename)).
				Options(
					huh.NewOption("Cancel", consolidate.Cancel),
					huh.NewOption("Regenerate it", consolidate.Regenerate),
					huh.NewOption("Keep it, delete source files only", consolidate.DeleteSourcesOnly),
				).
				Value(&decision),
		),
	)
	if err := form.Run(); err != nil {
		return consolidate.Cancel, err
	}
	return decision, nil
}

func (promptDecider) ConfirmDelete(paths []string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %d source file(s)?", len(paths))).
				Description(strings.Join(paths, "\n")).
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

// confirmOverwrite asks before regenerating a file that already exists.
func confirmOverwrite(filename string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists, overwrite?", filename)).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
