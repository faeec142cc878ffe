package datatable

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	"github.com/rogpeppe/go-internal/lockedfile"
	"gopkg.in/yaml.v3"
)

var log = logger.NewScoped("DATATABLE")

// SettingsStore persists table states in a YAML file, keyed by a storage key
// per table. The file is locked while read or written, so multiple processes
// may share the same file.
type SettingsStore struct {
	path string
}

// NewSettingsStore returns a store that reads and writes the given file.
func NewSettingsStore(path string) SettingsStore {
	return SettingsStore{path: path}
}

// DefaultSettingsPath returns the path to the settings file in the user's
// config directory.
func DefaultSettingsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "iver-wharf", "wharf-apps", "datatables.yml"), nil
}

// Path returns the path to the settings file.
func (s SettingsStore) Path() string {
	return s.path
}

// Load returns the stored state for a table. The boolean is false if no state
// has been stored for the key yet.
func (s SettingsStore) Load(key string) (State, bool, error) {
	b, err := lockedfile.Read(s.path)
	if os.IsNotExist(err) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}
	states, err := parseStates(b)
	if err != nil {
		return State{}, false, err
	}
	state, ok := states[key]
	return state, ok, nil
}

// Save stores the state for a table, leaving the states of other tables as-is.
func (s SettingsStore) Save(key string, state State) error {
	file, err := s.editFile()
	if err != nil {
		return err
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	states, err := parseStates(b)
	if err != nil {
		return err
	}
	state.Page = 0
	states[key] = state

	out, err := yaml.Marshal(states)
	if err != nil {
		return fmt.Errorf("marshal table settings: %w", err)
	}
	if err := file.Truncate(0); err != nil {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := file.Write(out); err != nil {
		return err
	}
	log.Debug().WithString("key", key).WithString("path", s.path).Message("Saved table settings.")
	return nil
}

func (s SettingsStore) editFile() (*lockedfile.File, error) {
	file, err := lockedfile.Edit(s.path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(s.path), 0775); err != nil {
			return nil, err
		}
		return lockedfile.Create(s.path)
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func parseStates(b []byte) (map[string]State, error) {
	states := map[string]State{}
	if len(b) == 0 {
		return states, nil
	}
	if err := yaml.Unmarshal(b, &states); err != nil {
		return nil, fmt.Errorf("parse table settings: %w", err)
	}
	if states == nil {
		states = map[string]State{}
	}
	return states, nil
}
