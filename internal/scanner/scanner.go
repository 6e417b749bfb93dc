// Package scanner locates extended C++ sources under a directory tree.
package scanner

import (
	"io/fs"
	"path/filepath"
)

// Ext marks a file for processing. The match is case sensitive, so
// FILE.CPPX is left alone.
const Ext = ".cppx"

// File is one extended C++ source found under the scan root. Size is -1
// when the file could not be stat'ed.
type File struct {
	Path string
	Size int64
}

// Files walks baseDir recursively and returns every regular file carrying
// the extended C++ extension, in walk order. Unreadable entries below the
// root are skipped rather than aborting the walk.
func Files(baseDir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == baseDir {
				return err
			}
			return nil
		}
		if !d.Type().IsRegular() || filepath.Ext(d.Name()) != Ext {
			return nil
		}
		size := int64(-1)
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		files = append(files, File{Path: path, Size: size})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
