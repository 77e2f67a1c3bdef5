package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/suideploy/internal/output"
)

const (
	// ProjectConfigFile is looked up in the working directory.
	ProjectConfigFile = "suideploy.toml"

	// HomeConfigFile is looked up in the home directory.
	HomeConfigFile = "config.toml"
)

// ConfigLoader is responsible for loading and merging configuration files.
type ConfigLoader struct {
	homeDir    string
	workDir    string
	configPath string // Explicit --config path
	logger     *output.Logger
}

// NewConfigLoader creates a new ConfigLoader that looks for the project file
// in the current directory.
func NewConfigLoader(homeDir, configPath string, logger *output.Logger) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		workDir:    ".",
		configPath: configPath,
		logger:     logger,
	}
}

// WithWorkDir sets the directory searched for suideploy.toml.
func (l *ConfigLoader) WithWorkDir(dir string) *ConfigLoader {
	l.workDir = dir
	return l
}

// candidates returns existing config files in increasing priority:
// <home>/config.toml, ./suideploy.toml, then the explicit path.
func (l *ConfigLoader) candidates() ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		files = append(files, path)
	}

	if l.homeDir != "" {
		homePath := filepath.Join(l.homeDir, HomeConfigFile)
		if _, err := os.Stat(homePath); err == nil {
			add(homePath)
		}
	}

	projectPath := filepath.Join(l.workDir, ProjectConfigFile)
	if _, err := os.Stat(projectPath); err == nil {
		add(projectPath)
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err != nil {
			return nil, fmt.Errorf("config file not found: %s", l.configPath)
		}
		add(l.configPath)
	}

	return files, nil
}

// LoadFileConfig loads every config file found and merges them, later files
// overriding earlier ones. It returns the merged FileConfig and the highest
// priority file path (empty if none was found).
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	files, err := l.candidates()
	if err != nil {
		return nil, "", err
	}

	var merged FileConfig
	var primaryFile string
	for _, configFile := range files {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile

		l.warnUnknownKeys(configFile, data)
		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}

	return &merged, primaryFile, nil
}

// warnUnknownKeys logs a warning for every top-level key FileConfig ignores.
func (l *ConfigLoader) warnUnknownKeys(path string, data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return
	}

	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key in %s: %s", path, key)
		}
	}
}
