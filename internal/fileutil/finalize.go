// Package fileutil provides shared file operation helpers: input resolution
// and atomic output through a temporary file in the destination directory.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	ownerReadWrite = 0o600
	executableBits = 0o111
)

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	SrcInfo os.FileInfo
	IsExec  bool
	TmpFile *os.File
	TmpName string
}

// NewTempContext stats the source file and creates a temp file next to outPath.
// Caller must defer CleanupOnError.
func NewTempContext(filename, outPath string) (*TempContext, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), TempPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		SrcInfo: info,
		IsExec:  info.Mode()&executableBits != 0,
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// TempPrefix starts the name of every in-flight temporary file.
const TempPrefix = ".tmp-"

// Commit sets owner read/write permissions (plus the executable bits when
// exec is set), closes the temp file and renames it onto outPath.
func (tc *TempContext) Commit(outPath string, exec bool) error {
	perm := os.FileMode(ownerReadWrite)

	if exec {
		perm |= executableBits
	}

	if err := os.Chmod(tc.TmpName, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err := tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(tc.TmpName, outPath); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// FinalizeOutput optionally preserves timestamps and returns the output file size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return outInfo.Size(), nil
}
