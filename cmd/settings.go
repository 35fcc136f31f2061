package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/exposim/exposim/study/session"
)

// Settings represents the full exposim.yaml structure. All fields must be
// listed to satisfy KnownFields(true) strict parsing: a typo in the file is
// an error, not a silently ignored key.
type Settings struct {
	ConfigsDir     string `yaml:"configs_dir"`     // base templates live here
	ResultsDir     string `yaml:"results_dir"`     // fingerprint-addressed result store
	DataDir        string `yaml:"data_dir"`        // session artifacts
	RetainSessions int    `yaml:"retain_sessions"` // per-class artifact cap; 0 means default
	LogLevel       string `yaml:"log_level"`       // default level, overridable with --log
}

// DefaultSettings apply when no settings file is present.
func DefaultSettings() Settings {
	return Settings{
		ConfigsDir:     "configs",
		ResultsDir:     "results",
		DataDir:        "data",
		RetainSessions: session.DefaultRetainCount,
		LogLevel:       "info",
	}
}

// LoadSettings reads path with strict field checking. A missing file is not
// an error; unset fields fall back to DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	def := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return def, nil
		}
		return def, fmt.Errorf("read settings %s: %w", path, err)
	}

	var s Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return def, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if s.ConfigsDir == "" {
		s.ConfigsDir = def.ConfigsDir
	}
	if s.ResultsDir == "" {
		s.ResultsDir = def.ResultsDir
	}
	if s.DataDir == "" {
		s.DataDir = def.DataDir
	}
	if s.RetainSessions < 0 {
		return def, fmt.Errorf("settings %s: retain_sessions must not be negative", path)
	}
	if s.RetainSessions == 0 {
		s.RetainSessions = def.RetainSessions
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return def, fmt.Errorf("settings %s: unknown log_level %q", path, s.LogLevel)
	}
	return s, nil
}
