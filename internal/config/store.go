package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Store reads and writes the config record in the project root and keeps
// the record's filename listed in .gitignore.
type Store struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

func NewStore(root string, log *slog.Logger) *Store {
	return NewStoreWithFS(afero.NewOsFs(), root, log)
}

func NewStoreWithFS(fs afero.Fs, root string, log *slog.Logger) *Store {
	return &Store{
		fs:   fs,
		root: root,
		log:  log.With(slog.String("item", "ConfigStore")),
	}
}

// Load returns the persisted record and whether one was found. When no
// config file exists the returned record carries the defaults and every
// field is up for prompting.
func (s *Store) Load() (*Config, bool, error) {
	path := filepath.Join(s.root, FileName)

	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, false, fmt.Errorf("cannot stat %s: %w", FileName, err)
	}

	var cfg Config
	if !ok {
		cfg.SetDefaults()
		s.log.Debug("No config file, using defaults", slog.String("path", path))

		return &cfg, false, nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, false, fmt.Errorf("cannot parse %s: %w", FileName, err)
	}

	return &cfg, true, nil
}

// Save writes the record back to the project root.
func (s *Store) Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot serialize config: %w", err)
	}

	path := filepath.Join(s.root, FileName)
	if err := afero.WriteFile(s.fs, path, data, 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", FileName, err)
	}

	s.log.Debug("Config written", slog.String("path", path))

	return nil
}

// EnsureIgnored appends the config filename to .gitignore once, if a
// .gitignore exists in the project root. Prior lines are left untouched.
func (s *Store) EnsureIgnored() error {
	path := filepath.Join(s.root, IgnoreFileName)

	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", IgnoreFileName, err)
	}
	if !ok {
		return nil
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", IgnoreFileName, err)
	}

	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		if line == FileName {
			return nil
		}
	}

	lines = append(lines, FileName)
	if err := afero.WriteFile(s.fs, path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("cannot write %s: %w", IgnoreFileName, err)
	}

	s.log.Debug("Added config file to gitignore", slog.String("path", path))

	return nil
}
