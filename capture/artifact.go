package capture

import (
	"github.com/user/video-clipper-cli/pkg/cliputil"
	"github.com/user/video-clipper-cli/selection"
)

// Target is what a session records: the loaded source's name and a copy of
// the selected range at the time the capture was triggered.
type Target struct {
	Name  string
	Range selection.Range
}

// Artifact is a finished clip.
type Artifact struct {
	SessionID string
	Data      []byte
	Format    Format
	Filename  string
	Range     selection.Range
	Chunks    int
}

// Size returns the clip size in bytes.
func (a *Artifact) Size() int64 {
	return int64(len(a.Data))
}

func newArtifact(s *session) *Artifact {
	size := 0
	for _, c := range s.chunks {
		size += len(c)
	}
	data := make([]byte, 0, size)
	for _, c := range s.chunks {
		data = append(data, c...)
	}
	return &Artifact{
		SessionID: s.id,
		Data:      data,
		Format:    s.format,
		Filename:  cliputil.ClipFilename(s.target.Name, s.format.Extension),
		Range:     s.target.Range,
		Chunks:    len(s.chunks),
	}
}
