package util

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FilterFiles walks dir and returns the relative slash-separated paths of
// the files that survive the include and exclude pattern lists. A file is
// kept when it matches at least one include pattern (an empty include list
// keeps everything) and matches no exclude pattern. Patterns are tried
// against both the relative path and the bare file name. Results follow
// the walk's lexical order. A missing directory yields no files.
func FilterFiles(dir string, include, exclude []string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()
		if len(include) > 0 && !MatchesAny(rel, include) && !MatchesAny(name, include) {
			return nil
		}
		if MatchesAny(rel, exclude) || MatchesAny(name, exclude) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}
