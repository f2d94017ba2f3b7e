package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFiles is returned when resolution selected nothing.
var ErrNoFiles = errors.New("no files matched")

// Selection controls Resolve.
type Selection struct {
	// Keep filters files found while walking directories. Explicitly named
	// files bypass it. Nil keeps everything.
	Keep func(path string) bool
	// Confine rejects absolute paths and paths escaping the working directory.
	Confine bool
}

// Resolve expands positional args (files and directories) into a
// de-duplicated file list. Directories are walked recursively; in-flight
// temporary files are skipped. It returns the files and the number of
// candidates scanned before filtering.
func Resolve(args []string, sel Selection) (files []string, scanned int, err error) {
	if sel.Confine {
		for _, arg := range args {
			if err := validatePath(arg); err != nil {
				return nil, 0, err
			}
		}
	}

	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		walked, total, err := walkDir(arg, sel.Keep)
		if err != nil {
			return nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			add(path)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

// walkDir walks root recursively, returning regular files that pass keep.
func walkDir(root string, keep func(string) bool) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		total++

		if strings.HasPrefix(d.Name(), TempPrefix) {
			return nil
		}

		if keep != nil && !keep(path) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}

// validatePath rejects paths that escape the current working directory.
func validatePath(path string) error {
	if filepath.IsAbs(path) {
		return fmt.Errorf("absolute paths are not allowed: %q", path)
	}

	clean := filepath.Clean(path)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("paths must be within the current working directory: %q", path)
	}

	return nil
}

// HasSuffix returns a Keep filter selecting names ending in suffix.
func HasSuffix(suffix string) func(string) bool {
	return func(path string) bool {
		return strings.HasSuffix(path, suffix)
	}
}

// LacksSuffix returns a Keep filter rejecting names ending in suffix.
func LacksSuffix(suffix string) func(string) bool {
	return func(path string) bool {
		return !strings.HasSuffix(path, suffix)
	}
}
