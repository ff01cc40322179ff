package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the authentication state as a single JSON file,
// read at startup and rewritten on every transition.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is the session file under the user's bookhub directory.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".bookhub", "session.json")
}

func (fs *FileStore) Load() (State, error) {
	var state State

	data, err := os.ReadFile(fs.path)
	if err != nil {
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}

func (fs *FileStore) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(fs.path, data, 0600)
}
