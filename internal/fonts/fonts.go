// Package fonts finds the TTF/OTF file the overlay text is drawn with.
package fonts

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Exts are the extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes and are sorted. A missing dir yields no paths.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(out)
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Pick returns the full path of the font to use from dir: the first whose name
// contains "regular", else the first found. It returns "" when dir has none.
func Pick(dir string) string {
	list, err := ScanDir(dir)
	if err != nil || len(list) == 0 {
		return ""
	}
	chosen := list[0]
	for _, rel := range list {
		if strings.Contains(strings.ToLower(rel), "regular") {
			chosen = rel
			break
		}
	}
	return filepath.Join(dir, filepath.FromSlash(chosen))
}
