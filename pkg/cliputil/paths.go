package cliputil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ClipPrefix is prepended to the source file name to name a clip.
const ClipPrefix = "clipped-"

// SanitizeName removes filesystem-unsafe characters from a file name.
func SanitizeName(name string) string {
	if name == "" {
		return "video"
	}
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "")
	}
	if name == "" {
		return "video"
	}
	return name
}

// maxFilenameBytes is the common filesystem limit on one path element.
// suffixReserve leaves room for the "-N" UniquePath may add.
const (
	maxFilenameBytes = 255
	suffixReserve    = 8
)

// ClipFilename returns the download name for a clip of the given source file,
// e.g. "match.mp4" recorded as webm becomes "clipped-match.mp4.webm". Long
// source names are cut so the result fits in one path element.
func ClipFilename(sourceName, ext string) string {
	suffix := ""
	if ext != "" {
		suffix = "." + strings.TrimPrefix(ext, ".")
	}
	name := truncateBytes(ClipPrefix+SanitizeName(sourceName), maxFilenameBytes-suffixReserve-len(suffix))
	return name + suffix
}

// truncateBytes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// UniquePath returns dir/name, or dir/name with a -1, -2, ... suffix before
// the extension if a file already exists there. Any error other than the
// candidate not existing is returned.
func UniquePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := filepath.Join(dir, name)
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return candidate, nil
		case err != nil:
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
}

// GetOutputDir returns the default directory clips are saved to: the
// directory holding the source video.
func GetOutputDir(videoPath string) string {
	return filepath.Dir(videoPath)
}
