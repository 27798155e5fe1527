//go:build !unix

package redact

import "os"

// Link counts and POSIX owners are not available here; the atomic rename
// only carries the permission bits.
func statMeta(info os.FileInfo) fileMeta {
	return fileMeta{perm: info.Mode().Perm(), links: 1}
}

func chownLike(*os.File, fileMeta) error { return nil }
