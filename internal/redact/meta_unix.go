//go:build unix

package redact

import (
	"os"
	"syscall"
)

func statMeta(info os.FileInfo) fileMeta {
	m := fileMeta{perm: info.Mode().Perm(), links: 1}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		m.links = uint64(st.Nlink)
		m.uid, m.gid = int(st.Uid), int(st.Gid)
		m.owned = true
	}
	return m
}

// chownLike gives f the owner recorded in meta. It is a no-op when the temp
// file already has that owner, which is the common unprivileged case.
func chownLike(f *os.File, meta fileMeta) error {
	if !meta.owned {
		return nil
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}
	cur := statMeta(info)
	if cur.owned && cur.uid == meta.uid && cur.gid == meta.gid {
		return nil
	}
	return f.Chown(meta.uid, meta.gid)
}
