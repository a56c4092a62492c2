// Package backup keeps a bounded history of the session file.
//
// Before the session file is overwritten, Rotator copies its current content
// to "<file>.<YYYYMMDDHHMMSS>.bak" in the same directory and then prunes the
// backup set down to the newest Keep files.
package backup

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/gobwas/glob"
)

// DefaultKeep is the number of backups retained after a rotation.
const DefaultKeep = 2

// TimestampLayout is embedded in backup names. It sorts lexicographically in
// creation order at one-second resolution.
const TimestampLayout = "20060102150405"

// Suffix terminates every backup file name.
const Suffix = ".bak"

// Backup is one member of the backup set.
type Backup struct {
	Path    string
	ModTime time.Time
}

// Rotator creates a timestamped copy of a file and enforces a retention cap.
// The zero value is not usable; use NewRotator.
type Rotator struct {
	// Keep is the number of most recent backups retained after pruning.
	Keep int
	// Now supplies the rotation timestamp. Tests replace it with a fixed clock.
	Now func() time.Time

	logger *logging.Logger
}

// NewRotator returns a Rotator that retains keep backups.
func NewRotator(keep int, logger *logging.Logger) *Rotator {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Rotator{
		Keep:   keep,
		Now:    time.Now,
		logger: logger,
	}
}

// BackupPath returns the backup file name for target taken at t.
func BackupPath(target string, t time.Time) string {
	return target + "." + t.Format(TimestampLayout) + Suffix
}

// pattern matches "<base>*.bak" where base is the target's file name. Any
// such file counts toward the cap, not only names Rotate produced.
func pattern(target string) (glob.Glob, error) {
	return glob.Compile(glob.QuoteMeta(filepath.Base(target)) + "*" + glob.QuoteMeta(Suffix))
}

// Rotate backs up target and prunes old backups. It must be called before
// target is overwritten. A missing target is not an error: there is nothing
// to preserve.
//
// Every copy, listing, or delete failure is collected and returned as a
// joined BackupError. Callers treat the result as a warning and continue with
// the write.
func (r *Rotator) Rotate(target string) error {
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewBackupError("failed to stat session file", err).WithPath(target)
	}

	var errs []error

	now := r.Now()
	backupPath := BackupPath(target, now)
	if err := copyFile(target, backupPath, now); err != nil {
		r.logger.Warn("failed to create backup", "backup", backupPath, "error", err.Error())
		errs = append(errs, errors.NewBackupError("failed to create backup", err).WithPath(backupPath))
	} else {
		r.logger.Debug("created backup", "backup", backupPath)
	}

	if err := r.prune(target); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// prune deletes every backup beyond the newest Keep.
func (r *Rotator) prune(target string) error {
	backups, err := List(target)
	if err != nil {
		return err
	}

	keep := max(r.Keep, 0)
	if len(backups) <= keep {
		return nil
	}

	var errs []error
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil && !os.IsNotExist(err) {
			r.logger.Warn("failed to remove old backup", "backup", b.Path, "error", err.Error())
			errs = append(errs, errors.NewBackupError("failed to remove old backup", err).WithPath(b.Path))
			continue
		}
		r.logger.Debug("removed old backup", "backup", b.Path)
	}
	return errors.Join(errs...)
}

// List returns the backup set for target, newest first. Backups with equal
// modification times are ordered by name, highest timestamp first.
func List(target string) ([]Backup, error) {
	dir := filepath.Dir(target)
	g, err := pattern(target)
	if err != nil {
		return nil, errors.NewBackupError("invalid backup pattern", err).WithPath(target)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewBackupError("failed to list backups", err).WithPath(dir)
	}

	var backups []Backup
	for _, entry := range entries {
		if entry.IsDir() || !g.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		backups = append(backups, Backup{
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].ModTime.Equal(backups[j].ModTime) {
			return backups[i].ModTime.After(backups[j].ModTime)
		}
		return backups[i].Path > backups[j].Path
	})
	return backups, nil
}

// copyFile copies src to dst with src's permissions and stamps dst with t.
func copyFile(src, dst string, t time.Time) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Chtimes(dst, t, t)
}
