// Package forms provides huh-based form components for the TUI.
package forms

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/video-clipper-cli/source"
)

// NewConfirmDiscardForm creates a huh confirm form asking the user whether to
// drop the clip that has not been saved yet.
// The result pointer is bound to the confirm field value.
func NewConfirmDiscardForm(discard *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Discard current clip?").
				Description("The clip has not been saved. Loading another video drops it.").
				Affirmative("Yes, discard").
				Negative("No, go back").
				Value(discard),
		),
	).WithTheme(Theme())
}

// NewOpenForm creates a file picker rooted at dir that only offers video files.
// The chosen path is written to path on submit.
func NewOpenForm(dir string, path *string) *huh.Form {
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Open video").
				Description("Choose the video to clip").
				CurrentDirectory(dir).
				AllowedTypes(source.VideoExtensions()).
				ShowSize(true).
				Picking(true).
				Value(path),
		),
	).WithTheme(Theme())
}

// NewSaveForm creates a huh input for the directory a clip is saved into,
// pre-filled with dir.
func NewSaveForm(filename string, dir *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Save "+filename).
				Description("Directory").
				Value(dir).
				Validate(ValidateSaveDir),
		),
	).WithTheme(Theme())
}

// ValidateSaveDir rejects empty directories and paths that exist but are not
// directories. Missing directories are created on save.
func ValidateSaveDir(dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("directory is required")
	}
	info, err := os.Stat(filepath.Clean(dir))
	if err == nil && !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}
