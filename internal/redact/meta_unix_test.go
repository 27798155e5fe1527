//go:build unix

package redact

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inode(t *testing.T, path string) uint64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return uint64(info.Sys().(*syscall.Stat_t).Ino)
}

func TestCensor_HardLinkRedactsEveryName(t *testing.T) {
	for _, mode := range []WriteMode{WriteAtomic, WriteTruncate} {
		t.Run(string(mode), func(t *testing.T) {
			dir := t.TempDir()
			a := filepath.Join(dir, "a.txt")
			b := filepath.Join(dir, "b.txt")
			require.NoError(t, os.WriteFile(a, []byte("token=ABC123"), 0o600))
			if err := os.Link(a, b); err != nil {
				t.Skipf("hard links unsupported: %v", err)
			}
			before := inode(t, a)

			r, err := Compile([]string{"ABC123"}, Options{WriteMode: mode})
			require.NoError(t, err)
			_, err = r.CensorFile(a)
			require.NoError(t, err)

			assert.Equal(t, "token=[REDACTED]", readBack(t, a))
			assert.Equal(t, "token=[REDACTED]", readBack(t, b))
			assert.Equal(t, before, inode(t, a), "linked file must be rewritten in place")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 2)
		})
	}
}

func TestCensorFile_AtomicKeepsOwner(t *testing.T) {
	path := writeTemp(t, "id=42")
	require.NoError(t, Censor(path, []string{`\d+`}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	st := info.Sys().(*syscall.Stat_t)
	assert.Equal(t, os.Getuid(), int(st.Uid))
	assert.Equal(t, "id=[REDACTED]", readBack(t, path))
}

func TestStatMeta_ReadsOwnerAndLinks(t *testing.T) {
	path := writeTemp(t, "x")
	require.NoError(t, os.Chmod(path, 0o644))
	info, err := os.Stat(path)
	require.NoError(t, err)

	m := statMeta(info)
	assert.True(t, m.owned)
	assert.Equal(t, os.Getuid(), m.uid)
	assert.Equal(t, uint64(1), m.links)
	assert.Equal(t, os.FileMode(0o644), m.perm)
}

func TestCensorFile_AtomicWriteFailureLeavesOriginal(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions do not apply to root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("token=ABC123"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	r, err := Compile([]string{"ABC123"}, Options{WriteMode: WriteAtomic})
	require.NoError(t, err)
	_, err = r.CensorFile(path)
	require.Error(t, err)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, path, we.Path)
	assert.Equal(t, "token=ABC123", readBack(t, path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
