// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory is a Filesystem rooted at a local directory. Cache hints are ignored.
type Directory struct {
	root string
}

func NewDirectory(root string) *Directory {
	return &Directory{root: root}
}

// Path returns where filename is stored.
func (dir *Directory) Path(filename string) string {
	return filepath.Join(dir.root, filepath.FromSlash(filename))
}

func (dir *Directory) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	clean := filepath.ToSlash(filepath.Clean(filename))
	if clean == "." || strings.HasPrefix(clean, "../") || clean == ".." || filepath.IsAbs(filename) {
		return fmt.Errorf("filename %q escapes %s", filename, dir.root)
	}

	path := dir.Path(clean)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return writeAtomic(path, data)
}

// writeAtomic writes a temporary sibling and renames it over path,
// so readers and concurrent writers never see a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, 0644)
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
