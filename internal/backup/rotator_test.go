package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns successive instants one second apart.
func fakeClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func newTestRotator(keep int) *Rotator {
	r := NewRotator(keep, nil)
	r.Now = fakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	return r
}

func TestBackupPath(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 7, 0, time.Local)
	assert.Equal(t, "/home/u/.tmux-session.20240301090507.bak", BackupPath("/home/u/.tmux-session", ts))
}

func TestRotate_MissingTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".tmux-session")

	require.NoError(t, newTestRotator(DefaultKeep).Rotate(target))

	backups, err := List(target)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRotate_CopiesContent(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".tmux-session")
	require.NoError(t, os.WriteFile(target, []byte("dev;editor;/home/u/proj\n"), 0o644))

	r := newTestRotator(DefaultKeep)
	require.NoError(t, r.Rotate(target))

	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, target+".20240301090000.bak", backups[0].Path)

	data, err := os.ReadFile(backups[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "dev;editor;/home/u/proj\n", string(data))

	// The original is untouched.
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "dev;editor;/home/u/proj\n", string(data))
}

func TestRotate_EnforcesCap(t *testing.T) {
	target := filepath.Join(t.TempDir(), ".tmux-session")
	r := newTestRotator(DefaultKeep)

	contents := []string{"v1\n", "v2\n", "v3\n", "v4\n", "v5\n"}
	for _, c := range contents {
		require.NoError(t, r.Rotate(target))
		require.NoError(t, os.WriteFile(target, []byte(c), 0o644))
	}

	// The first rotation found no file and took no timestamp; the next four
	// each added a backup.
	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 2)

	assert.Equal(t, target+".20240301090003.bak", backups[0].Path)
	assert.Equal(t, target+".20240301090002.bak", backups[1].Path)

	newest, err := os.ReadFile(backups[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "v4\n", string(newest))

	second, err := os.ReadFile(backups[1].Path)
	require.NoError(t, err)
	assert.Equal(t, "v3\n", string(second))
}

func TestRotate_KeepsConfiguredCount(t *testing.T) {
	target := filepath.Join(t.TempDir(), "layout")
	require.NoError(t, os.WriteFile(target, []byte("x\n"), 0o644))

	r := newTestRotator(4)
	for i := 0; i < 6; i++ {
		require.NoError(t, r.Rotate(target))
	}

	backups, err := List(target)
	require.NoError(t, err)
	assert.Len(t, backups, 4)
}

func TestRotate_CopyFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".tmux-session")
	require.NoError(t, os.WriteFile(target, []byte("dev;editor;/home/u\n"), 0o644))

	r := newTestRotator(DefaultKeep)
	// A directory squatting on the backup name makes the copy fail.
	blocked := BackupPath(target, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	require.NoError(t, os.Mkdir(blocked, 0o755))

	err := r.Rotate(target)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrBackupIO))
	assert.Equal(t, errors.SeverityWarning, errors.GetSeverity(err))

	// The session file survives a failed rotation.
	data, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "dev;editor;/home/u\n", string(data))
}

func TestList_MatchesNamePrefixAndBakSuffix(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".tmux-session")
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	for _, name := range []string{
		".tmux-session.20240101000000.bak",
		".tmux-session-old.bak",
		".tmux-session",
		".tmux-session.tmp",
		"..tmux-session.tmp-123",
		"other.20240101000000.bak",
		"x.tmux-session.bak",
		".tmux-session.20240101000000.bak.gz",
	} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(p, older, older))
	}

	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, filepath.Join(dir, ".tmux-session.20240101000000.bak"), backups[0].Path)
	assert.Equal(t, filepath.Join(dir, ".tmux-session-old.bak"), backups[1].Path)
}

func TestRotate_PrunesStrayBackups(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, ".tmux-session")
	require.NoError(t, os.WriteFile(target, []byte("dev;editor;/home/u\n"), 0o644))

	// A hand-made backup older than anything Rotate produces.
	stray := filepath.Join(dir, ".tmux-session-old.bak")
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o644))
	old := time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(stray, old, old))

	r := newTestRotator(DefaultKeep)
	require.NoError(t, r.Rotate(target))
	require.NoError(t, r.Rotate(target))

	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, target+".20240301090001.bak", backups[0].Path)
	assert.Equal(t, target+".20240301090000.bak", backups[1].Path)

	_, err = os.Stat(stray)
	assert.True(t, os.IsNotExist(err), "stray backup should be pruned, stat err = %v", err)
}

func TestList_TieBreaksByName(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "sessions")
	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	names := []string{
		"sessions.20240101000001.bak",
		"sessions.20240101000003.bak",
		"sessions.20240101000002.bak",
	}
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		require.NoError(t, os.Chtimes(p, same, same))
	}

	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, filepath.Join(dir, "sessions.20240101000003.bak"), backups[0].Path)
	assert.Equal(t, filepath.Join(dir, "sessions.20240101000002.bak"), backups[1].Path)
	assert.Equal(t, filepath.Join(dir, "sessions.20240101000001.bak"), backups[2].Path)
}

func TestList_QuotesGlobMetacharacters(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "layout[work]")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout[work].20240101000000.bak"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "layoutw.20240101000000.bak"), []byte("x"), 0o644))

	backups, err := List(target)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, filepath.Join(dir, "layout[work].20240101000000.bak"), backups[0].Path)
}
