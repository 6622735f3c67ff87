package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// StartError reports that the renderer subprocess could not be launched at
// all, usually because the virtual environment is missing.
type StartError struct {
	Bin string
	Err error
}

func (e *StartError) Error() string {
	if errors.Is(e.Err, exec.ErrNotFound) || errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("python executable not found at %s; make sure the virtual environment is set up correctly", e.Bin)
	}
	return fmt.Sprintf("animation generation failed to start: %v", e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// ExitError reports a renderer subprocess that exited non-zero. Stderr is
// forwarded verbatim since it is the only diagnostic the renderer emits.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("animation generation failed: %s", e.Stderr)
}

// MissingOutputError reports a zero exit with no video file at the expected
// location.
type MissingOutputError struct {
	Path string
}

func (e *MissingOutputError) Error() string {
	return fmt.Sprintf("video file was not generated at the expected location: %s; check the media directory for the generated files", e.Path)
}
