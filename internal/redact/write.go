package redact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteMode selects how redacted content is persisted.
type WriteMode string

const (
	// WriteAtomic writes a temporary file next to the target and renames it
	// into place. The original survives any failure before the rename.
	WriteAtomic WriteMode = "atomic"
	// WriteTruncate truncates the existing file and writes into it. A failed
	// write can leave the file empty or partial.
	WriteTruncate WriteMode = "truncate"
)

// ParseWriteMode converts a config or flag value to a WriteMode. Empty means atomic.
func ParseWriteMode(s string) (WriteMode, error) {
	switch WriteMode(s) {
	case "", WriteAtomic:
		return WriteAtomic, nil
	case WriteTruncate:
		return WriteTruncate, nil
	default:
		return "", fmt.Errorf("unknown write mode: %s (want atomic or truncate)", s)
	}
}

// fileMeta is what a rewrite must carry over from the original file.
type fileMeta struct {
	perm  os.FileMode
	links uint64
	// owned is set when uid and gid were read from the platform stat.
	owned    bool
	uid, gid int
}

// errOwnership means the temp file could not be given the original owner.
var errOwnership = errors.New("cannot preserve file owner")

func writeFile(path string, data []byte, meta fileMeta, mode WriteMode) error {
	if mode == WriteTruncate {
		return writeTruncate(path, data)
	}
	err := writeAtomic(path, data, meta)
	if errors.Is(err, errOwnership) {
		// Rewriting the existing inode keeps its owner.
		return writeTruncate(path, data)
	}
	return err
}

// writeTruncate never creates the file: if it vanished since it was read the
// write fails.
func writeTruncate(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeAtomic(path string, data []byte, meta fileMeta) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".censor-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Chmod(meta.perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = chownLike(tmp, meta); err != nil {
		return fmt.Errorf("%w: %v", errOwnership, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing file: %w", err)
	}
	return nil
}
