package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

const (
	configDirName  = "studyshelf"
	configFileName = "config.json"
)

func DefaultConfig() Config {
	return Config{
		FolderPath: "",
		Theme:      "dark",
		Workers:    runtime.NumCPU(),
		SkipHidden: false,
	}
}

func ConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, configDirName, configFileName), nil
}

// Store persists the last-used folder and preferences as JSON.
type Store struct {
	Path string
}

func DefaultStore() (Store, error) {
	path, err := ConfigPath()
	if err != nil {
		return Store{}, err
	}
	return Store{Path: path}, nil
}

// Load returns the stored config merged over the defaults. The second
// result is false when nothing usable is stored; read and parse failures
// count as "nothing stored".
func (store Store) Load() (Config, bool) {
	config := DefaultConfig()
	if store.Path == "" {
		return config, false
	}
	data, err := os.ReadFile(store.Path)
	if err != nil {
		return config, false
	}
	var stored fileConfig
	if err := json.Unmarshal(data, &stored); err != nil {
		return config, false
	}
	return mergeConfig(config, stored), true
}

func (store Store) Save(config Config) error {
	return store.write(config)
}

// SaveFolder records folder as the last-used study folder. Other stored
// fields are kept as they are, so per-run flags never become defaults.
func (store Store) SaveFolder(folder string) error {
	var stored fileConfig
	if data, err := os.ReadFile(store.Path); err == nil {
		if err := json.Unmarshal(data, &stored); err != nil {
			stored = fileConfig{}
		}
	}
	stored.FolderPath = &folder
	return store.write(stored)
}

func (store Store) write(record any) error {
	if err := os.MkdirAll(filepath.Dir(store.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(store.Path, data, 0o600)
}

func mergeConfig(base Config, stored fileConfig) Config {
	merged := base
	if stored.FolderPath != nil {
		merged.FolderPath = *stored.FolderPath
	}
	if stored.Theme != nil {
		merged.Theme = *stored.Theme
	}
	if stored.Workers != nil && *stored.Workers > 0 {
		merged.Workers = *stored.Workers
	}
	if stored.SkipHidden != nil {
		merged.SkipHidden = *stored.SkipHidden
	}
	return merged
}
