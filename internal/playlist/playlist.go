// ABOUTME: Track discovery by recursive directory walk
// ABOUTME: Collects wav files in walk order into an ordered playlist
package playlist

import (
	"io/fs"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrNoTracks reports a scan that matched no audio files. Startup treats
// this as fatal: there is nothing to play.
var ErrNoTracks = errors.New("no audio files found")

// wavExt is matched case-sensitively against file extensions.
const wavExt = ".wav"

// Scan walks the directory tree rooted at root and returns the paths of
// all wav files in walk order. The order is whatever the walk yields; no
// sorting is applied.
func Scan(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", root)
	}

	tracks := lo.Filter(paths, func(path string, _ int) bool {
		return filepath.Ext(path) == wavExt
	})
	if len(tracks) == 0 {
		return nil, ErrNoTracks
	}
	return tracks, nil
}
