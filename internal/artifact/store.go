package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrOutputUnwritable marks failures to create the output directory or to
// write an artifact into it.
var ErrOutputUnwritable = errors.New("artifact: output unwritable")

// State captures how an artifact on disk compares with its rendered form.
type State string

const (
	StateMissing State = "missing"
	StateReady   State = "ready"
	StateStale   State = "stale"
	StateError   State = "error"
)

// CheckResult captures Store.Check results.
type CheckResult struct {
	Ref   Ref
	Path  string
	State State
	Err   error
}

// Result describes one artifact after Store.Write.
type Result struct {
	Ref
	Path  string
	Bytes int64
	// Previous is the on-disk state before the write.
	Previous State
}

// Changed reports whether the write altered the file on disk.
func (r Result) Changed() bool {
	return r.Previous != StateReady
}

// Store manages artifact IO rooted at the output directory.
type Store struct {
	dir  string
	mode fs.FileMode
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithFileMode overrides the permission bits used for new artifacts.
func WithFileMode(mode fs.FileMode) StoreOption {
	return func(s *Store) {
		s.mode = mode
	}
}

// NewStore builds a store for an output directory.
func NewStore(dir string, opts ...StoreOption) *Store {
	store := &Store{
		dir:  filepath.Clean(dir),
		mode: 0o644,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path resolves the on-disk location of an artifact.
func (s *Store) Path(ref Ref) string {
	return filepath.Join(s.dir, ref.FileName)
}

// Prepare creates the output directory. Calling it on an existing directory
// is a no-op.
func (s *Store) Prepare() error {
	info, err := os.Stat(s.dir)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrOutputUnwritable, s.dir)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrOutputUnwritable, s.dir, err)
	}
	return nil
}

// Check inspects the artifact on disk and compares it with the rendered body.
func (s *Store) Check(a Artifact) (CheckResult, error) {
	if err := a.Validate(); err != nil {
		return CheckResult{Ref: a.Ref, State: StateError, Err: err}, err
	}
	path := s.Path(a.Ref)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckResult{Ref: a.Ref, Path: path, State: StateMissing}, nil
		}
		return CheckResult{Ref: a.Ref, Path: path, State: StateError, Err: err}, err
	}
	if info.IsDir() {
		err := fmt.Errorf("artifact: %s is a directory", path)
		return CheckResult{Ref: a.Ref, Path: path, State: StateError, Err: err}, err
	}
	if info.Size() != int64(len(a.Body)) {
		return CheckResult{Ref: a.Ref, Path: path, State: StateStale}, nil
	}
	existing, err := os.ReadFile(path)
	if err != nil {
		return CheckResult{Ref: a.Ref, Path: path, State: StateError, Err: err}, err
	}
	if !bytes.Equal(existing, a.Body) {
		return CheckResult{Ref: a.Ref, Path: path, State: StateStale}, nil
	}
	return CheckResult{Ref: a.Ref, Path: path, State: StateReady}, nil
}

// Write persists a single artifact. Files already holding identical bytes
// are left untouched.
func (s *Store) Write(a Artifact) (Result, error) {
	check, err := s.Check(a)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s: %v", ErrOutputUnwritable, a.FileName, err)
	}
	result := Result{Ref: a.Ref, Path: check.Path, Bytes: int64(len(a.Body)), Previous: check.State}
	if check.State == StateReady {
		return result, nil
	}
	if err := os.WriteFile(check.Path, a.Body, s.mode); err != nil {
		return Result{}, fmt.Errorf("%w: write %s: %v", ErrOutputUnwritable, check.Path, err)
	}
	return result, nil
}

// WriteAll prepares the directory and writes every artifact in order,
// stopping at the first failure.
func (s *Store) WriteAll(arts []Artifact) ([]Result, error) {
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(arts))
	for _, a := range arts {
		if other, dup := seen[a.FileName]; dup {
			return nil, fmt.Errorf("artifact: %s and %s share file name %s", other, a.ID, a.FileName)
		}
		seen[a.FileName] = a.ID
	}
	results := make([]Result, 0, len(arts))
	for _, a := range arts {
		result, err := s.Write(a)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}
