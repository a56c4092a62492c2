package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/tmux-layout/internal/backup"
	"github.com/Iron-Ham/tmux-layout/internal/errors"
	"github.com/Iron-Ham/tmux-layout/internal/logging"
	"github.com/Iron-Ham/tmux-layout/internal/topology"
)

// defaultFileMode is used when the session file is created for the first time.
const defaultFileMode os.FileMode = 0o644

// BackupRotator preserves the current session file before it is replaced.
// *backup.Rotator is the production implementation.
type BackupRotator interface {
	Rotate(target string) error
}

// Store persists a topology to the session file.
type Store struct {
	// Path is the session file. It must already be expanded.
	Path string
	// Rotator backs up the previous content before each write. Nil disables
	// backups.
	Rotator BackupRotator

	logger *logging.Logger
}

// NewStore returns a Store for path.
func NewStore(path string, rotator BackupRotator, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Store{
		Path:    path,
		Rotator: rotator,
		logger:  logger,
	}
}

// ReadSaved decodes the session file. A missing file yields a FileError
// matching errors.ErrFileNotFound; a bad line yields a RecordError.
func (s *Store) ReadSaved() (topology.Topology, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileError("cannot read saved layout", errors.ErrFileNotFound).WithPath(s.Path)
		}
		return nil, errors.NewFileError("cannot read saved layout", err).WithPath(s.Path)
	}
	defer f.Close()

	topo, err := topology.DecodeTopology(f)
	if err != nil {
		return nil, errors.Wrapf(err, "session file %s", s.Path)
	}
	s.logger.Debug("read saved layout", "path", s.Path, "records", len(topo))
	return topo, nil
}

// Write replaces the session file with topo. Records are validated first so
// that a save never produces a file it cannot read back. When the file
// already exists it is rotated into the backup set; rotation failures are
// logged and do not stop the write.
func (s *Store) Write(topo topology.Topology) error {
	if err := topo.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save layout")
	}

	perm := defaultFileMode
	if info, err := os.Stat(s.Path); err == nil {
		perm = info.Mode().Perm()
		if s.Rotator != nil {
			if err := s.Rotator.Rotate(s.Path); err != nil {
				s.logRotateFailure(err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return errors.NewFileError("cannot create session file directory", err).WithPath(s.Path)
	}
	if err := atomicWriteFile(s.Path, topology.Encode(topo), perm); err != nil {
		return errors.NewFileError("cannot write session file", err).WithPath(s.Path)
	}

	s.logger.Info("saved layout", "path", s.Path, "records", len(topo))
	return nil
}

// logRotateFailure logs a failed rotation at the level its severity calls
// for. Backup errors are warnings; anything else is reported as an error.
// The write proceeds either way.
func (s *Store) logRotateFailure(err error) {
	args := []any{"path", s.Path, "error", err.Error()}
	if errors.GetSeverity(err) == errors.SeverityWarning {
		s.logger.Warn("backup rotation failed, saving anyway", args...)
		return
	}
	s.logger.Error("backup rotation failed, saving anyway", args...)
}

// Backups returns the current backup set of the session file, newest first.
func (s *Store) Backups() ([]backup.Backup, error) {
	return backup.List(s.Path)
}

// atomicWriteFile writes data to a temp file in the same directory and
// renames it over path.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
