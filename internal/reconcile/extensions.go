package reconcile

import (
	"path/filepath"
	"sort"
	"strings"
)

// ExtSet is a case-insensitive set of file extensions (with leading dot).
type ExtSet map[string]struct{}

// NewExtSet builds an ExtSet, normalizing each extension to lowercase and
// ensuring the leading dot.
func NewExtSet(exts ...string) ExtSet {
	s := make(ExtSet, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether the file name's extension belongs to the set.
func (s ExtSet) Has(name string) bool {
	_, ok := s[strings.ToLower(filepath.Ext(name))]
	return ok
}

// List returns the extensions sorted, for echoing in reports.
func (s ExtSet) List() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set with the members of both sets.
func (s ExtSet) Union(other ExtSet) ExtSet {
	out := make(ExtSet, len(s)+len(other))
	for e := range s {
		out[e] = struct{}{}
	}
	for e := range other {
		out[e] = struct{}{}
	}
	return out
}

// MovieExtensions is the default set used to classify a folder as a movie
// folder.
func MovieExtensions() ExtSet {
	return NewExtSet(
		".avi", ".mkv", ".mp4", ".mov", ".wmv", ".flv", ".webm",
		".m4v", ".mpg", ".mpeg", ".ts", ".m2ts", ".vob", ".divx",
	)
}

// SubtitleExtensions is the default set of subtitle formats. Some subtitle
// rips ship as plain .txt, so it is included.
func SubtitleExtensions() ExtSet {
	return NewExtSet(
		".srt", ".sub", ".vtt", ".ass", ".ssa", ".idx", ".sup",
		".scc", ".ttml", ".dfxp", ".mcc", ".stl", ".sbv", ".smi",
		".txt",
	)
}

// MetadataExtensions are sidecar files that may accompany subtitles when
// syncing with metadata enabled.
func MetadataExtensions() ExtSet {
	return NewExtSet(".nfo", ".jpg", ".png")
}
