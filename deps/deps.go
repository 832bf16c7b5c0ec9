package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// CheckMpv checks if mpv is installed and available in PATH.
// An empty binary means "mpv".
func CheckMpv(binary string) error {
	return check(binary, "mpv", MpvInstallURL)
}

// CheckFfmpeg checks if ffmpeg is installed and available in PATH.
// An empty binary means "ffmpeg".
func CheckFfmpeg(binary string) error {
	return check(binary, "ffmpeg", FfmpegInstallURL)
}

func check(binary, name, url string) error {
	if binary == "" {
		binary = name
	}
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{
			Name:       binary,
			InstallURL: url,
		}
	}
	return nil
}

// CheckAll checks all dependencies and returns a slice of errors for missing ones
func CheckAll(mpvBinary, ffmpegBinary string) []error {
	var errors []error

	if err := CheckMpv(mpvBinary); err != nil {
		errors = append(errors, err)
	}

	if err := CheckFfmpeg(ffmpegBinary); err != nil {
		errors = append(errors, err)
	}

	return errors
}
