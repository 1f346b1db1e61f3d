package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultRepositoriesRoot = "data/repos"
	defaultMirrorPath       = "data/mirror"
	defaultGitBinary        = "git"
	defaultBranch           = "main"
	defaultBotName          = "gitvault-bot"
	defaultBotEmail         = "bot@gitvault.local"
	defaultHistoryLimit     = 50
	defaultAnalyticsWorkers = 4
	MaxHistoryLimit         = 1000 // upper bound of any history query
)

// Settings is the top-level configuration for gitvault.
type Settings struct {
	RepositoriesRoot string `yaml:"repositories_root"` // one directory per project lives here
	MirrorPath       string `yaml:"mirror_path"`       // badger directory of the document mirror
	GitBinary        string `yaml:"git_binary"`
	DefaultBranch    string `yaml:"default_branch"`
	BotName          string `yaml:"bot_name"`  // identity configured on every new repository
	BotEmail         string `yaml:"bot_email"`
	HistoryLimit     int    `yaml:"history_limit"`
	AnalyticsWorkers int    `yaml:"analytics_workers"`
	LogLevel         string `yaml:"log_level"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the configuration used when no file is found.
func DefaultSettings() *Settings {
	return &Settings{
		RepositoriesRoot: defaultRepositoriesRoot,
		MirrorPath:       defaultMirrorPath,
		GitBinary:        defaultGitBinary,
		DefaultBranch:    defaultBranch,
		BotName:          defaultBotName,
		BotEmail:         defaultBotEmail,
		HistoryLimit:     defaultHistoryLimit,
		AnalyticsWorkers: defaultAnalyticsWorkers,
		LogLevel:         "info",
	}
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and filling defaults for every omitted field.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for _, field := range []*string{
		&settings.RepositoriesRoot,
		&settings.MirrorPath,
		&settings.GitBinary,
		&settings.DefaultBranch,
		&settings.BotName,
		&settings.BotEmail,
		&settings.LogLevel,
	} {
		*field = expandEnv(*field)
	}

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings loads the given file, the first file found in the default
// locations when path is empty, or the defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return DefaultSettings(), nil
		}
		path = found
	}

	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitvault.yaml",
		".gitvault.yml",
		"gitvault.yaml",
		"gitvault.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// EffectiveHistoryLimit clamps a requested history length to the configured bounds.
func (s *Settings) EffectiveHistoryLimit(requested int) int {
	if requested <= 0 {
		return s.HistoryLimit
	}
	if requested > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return requested
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// validateSettings checks for required configuration values.
func validateSettings(s *Settings) error {
	if s.RepositoriesRoot == "" {
		return errors.New("repositories_root is required")
	}
	if s.MirrorPath == "" {
		return errors.New("mirror_path is required")
	}
	if s.GitBinary == "" {
		return errors.New("git_binary is required")
	}
	if err := ValidateBranchName(s.DefaultBranch); err != nil {
		return fmt.Errorf("default_branch: %w", err)
	}
	if s.BotName == "" || s.BotEmail == "" {
		return errors.New("bot_name and bot_email are required")
	}
	if s.HistoryLimit <= 0 || s.HistoryLimit > MaxHistoryLimit {
		return fmt.Errorf("history_limit must be between 1 and %d", MaxHistoryLimit)
	}
	if s.AnalyticsWorkers <= 0 {
		return errors.New("analytics_workers must be positive")
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
