package data

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/fvbommel/sortorder"
)

const stateFile = "config.yaml"

// Store keeps one state file per profile under a root directory.
type Store struct {
	root string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// ProfilePath returns the directory of a profile.
func (s *Store) ProfilePath(profile string) string {
	return filepath.Join(s.root, SafeName(profile))
}

// StatePath returns the state file of a profile.
func (s *Store) StatePath(profile string) string {
	return filepath.Join(s.ProfilePath(profile), stateFile)
}

// Load reads the state of a profile, or a fresh one if none was saved.
func (s *Store) Load(profile string) (*ProfileState, error) {
	st := NewProfileState(profile)
	if _, err := ReadYAML(s.StatePath(profile), st); err != nil {
		return nil, fmt.Errorf("load state of profile %q: %w", profile, err)
	}
	st.Profile = profile
	st.Validate()

	return st, nil
}

// Save writes the state of its profile.
func (s *Store) Save(st *ProfileState) error {
	if st == nil {
		return errors.New("no profile state to save")
	}
	st.mx.RLock()
	defer st.mx.RUnlock()

	if err := WriteYAML(s.StatePath(st.Profile), st); err != nil {
		return fmt.Errorf("save state of profile %q: %w", st.Profile, err)
	}

	return nil
}

// Profiles lists the profiles with a saved state, in natural order.
func (s *Store) Profiles() ([]string, error) {
	ee, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profile states: %w", err)
	}

	var pp []string
	for _, e := range ee {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), stateFile)); err == nil {
			pp = append(pp, e.Name())
		}
	}
	sort.Sort(sortorder.Natural(pp))

	return pp, nil
}

// Remove drops the saved state of a profile.
func (s *Store) Remove(profile string) error {
	return os.RemoveAll(s.ProfilePath(profile))
}
