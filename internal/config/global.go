package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/pyforge/wheel-installer/internal/config/validate"
	"github.com/pyforge/wheel-installer/internal/utils/logger"
	"github.com/pyforge/wheel-installer/internal/utils/security"
	"github.com/pyforge/wheel-installer/internal/utils/slice"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

var log = logger.Logger()

var pythonVersionRe = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

// GlobalConfig holds tool-level configuration parameters.
type GlobalConfig struct {
	Workers       int      `yaml:"workers" json:"workers"`                                     // Concurrent requirement pipelines (1-100, default: 8)
	CacheDir      string   `yaml:"cache_dir" json:"cache_dir"`                                 // Wheel download cache (default: ./cache)
	TempDir       string   `yaml:"temp_dir" json:"temp_dir"`                                   // Scratch space for in-flight downloads (empty = system default)
	TargetDir     string   `yaml:"target_dir" json:"target_dir"`                               // Directory wheels are unpacked into (default: ./site-packages)
	IndexURL      string   `yaml:"index_url" json:"index_url"`                                 // Package index JSON API base URL
	PythonVersion string   `yaml:"python_version" json:"python_version"`                       // Target interpreter version, e.g. "3.11"
	Platforms     []string `yaml:"platforms,omitempty" json:"platforms,omitempty"`             // Optional platform tag override, most specific first

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig controls basic logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file,omitempty" json:"file,omitempty"`
}

var (
	globalInstance *GlobalConfig
	globalMutex    sync.RWMutex
	once           sync.Once
)

// SetGlobal sets the global config instance (call once at startup in main.go).
func SetGlobal(config *GlobalConfig) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalInstance = config
}

// Global returns the global config instance.
func Global() *GlobalConfig {
	once.Do(func() {
		globalMutex.Lock()
		defer globalMutex.Unlock()
		if globalInstance == nil {
			globalInstance = DefaultGlobalConfig()
		}
	})

	globalMutex.RLock()
	defer globalMutex.RUnlock()
	return globalInstance
}

// DefaultGlobalConfig returns a GlobalConfig with sensible defaults.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Workers:       8,
		CacheDir:      "./cache",
		TempDir:       "",
		TargetDir:     "./site-packages",
		IndexURL:      "https://pypi.org/pypi",
		PythonVersion: "3.11",

		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadGlobalConfig loads configuration from the specified path, falling back
// to defaults when the path is empty or absent.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	config := DefaultGlobalConfig()

	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		if errors.Is(err, os.ErrPermission) {
			log.Warnf("Config file %s is not accessible (%v); using defaults", configPath, err)
			return config, nil
		}
		return nil, fmt.Errorf("accessing config file %s: %w", configPath, err)
	}

	data, err := security.SafeReadFile(configPath, security.RejectSymlinks)
	if err != nil {
		log.Errorf("Error reading config file %s: %v", configPath, err)
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		// Validate the raw document against the schema first, then decode.
		jsonData, err := sigsyaml.YAMLToJSON(data)
		if err != nil {
			log.Errorf("Error converting config to JSON for validation: %v", err)
			return nil, fmt.Errorf("converting config to JSON for validation: %w", err)
		}
		if err := validate.ValidateConfigJSON(jsonData); err != nil {
			log.Errorf("Schema validation failed: %v", err)
			return nil, fmt.Errorf("schema validation failed: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			log.Errorf("Error parsing YAML config: %v", err)
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	if err := config.Validate(); err != nil {
		log.Errorf("Config validation failed: %v", err)
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// SaveGlobalConfigWithComments writes the configuration with descriptive
// comments. Used by the config init command to create a starting file.
func (gc *GlobalConfig) SaveGlobalConfigWithComments(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is empty")
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	commented := gc.renderCommentedYAML()

	if err := security.SafeWriteFile(configPath, []byte(commented), 0600, security.RejectSymlinks); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func (gc *GlobalConfig) renderCommentedYAML() string {
	var b strings.Builder

	b.WriteString("# wheel-installer - Global Configuration\n")
	b.WriteString("# Tool-level settings that apply to every batch install.\n\n")

	fmt.Fprintf(&b, "workers: %d\n", gc.Workers)
	b.WriteString("# Number of requirements processed concurrently (1-100, default: 8)\n\n")

	fmt.Fprintf(&b, "cache_dir: %q\n", gc.CacheDir)
	b.WriteString("# Directory where downloaded wheels are kept between runs\n\n")

	fmt.Fprintf(&b, "temp_dir: %q\n", gc.TempDir)
	b.WriteString("# Scratch space for in-flight downloads; empty uses the system default\n\n")

	fmt.Fprintf(&b, "target_dir: %q\n", gc.TargetDir)
	b.WriteString("# Directory wheels are unpacked into (site-packages)\n\n")

	fmt.Fprintf(&b, "index_url: %q\n", gc.IndexURL)
	b.WriteString("# Base URL of the package index JSON API\n\n")

	fmt.Fprintf(&b, "python_version: %q\n", gc.PythonVersion)
	b.WriteString("# Target interpreter version used when ranking wheel compatibility\n\n")

	b.WriteString("logging:\n")
	fmt.Fprintf(&b, "  level: %q\n", gc.Logging.Level)
	b.WriteString("  # Log verbosity: debug, info, warn, error\n")
	if gc.Logging.File != "" {
		fmt.Fprintf(&b, "  file: %q\n", gc.Logging.File)
		b.WriteString("  # Tee logs to this file in addition to stderr\n")
	}

	return b.String()
}

// Validate checks the configuration for consistency.
func (gc *GlobalConfig) Validate() error {
	if gc.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", gc.Workers)
	}
	if gc.Workers > 100 {
		return fmt.Errorf("workers cannot exceed 100, got %d", gc.Workers)
	}

	if gc.CacheDir == "" {
		return fmt.Errorf("cache_dir cannot be empty")
	}
	if gc.TargetDir == "" {
		return fmt.Errorf("target_dir cannot be empty")
	}
	if gc.IndexURL == "" {
		return fmt.Errorf("index_url cannot be empty")
	}
	gc.IndexURL = strings.TrimRight(gc.IndexURL, "/")

	if !pythonVersionRe.MatchString(gc.PythonVersion) {
		return fmt.Errorf("invalid python_version %q, expected MAJOR.MINOR", gc.PythonVersion)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slice.Contains(validLevels, gc.Logging.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			gc.Logging.Level, strings.Join(validLevels, ", "))
	}

	gc.Logging.File = strings.TrimSpace(gc.Logging.File)

	if gc.TempDir == "" {
		gc.TempDir = os.TempDir()
	}

	return nil
}

// GetConfigPaths returns the standard configuration file paths to check.
func GetConfigPaths() []string {
	homeDir, _ := os.UserHomeDir()

	paths := []string{
		"wheel-installer.yml",
		".wheel-installer.yml",
		"wheel-installer.yaml",
		".wheel-installer.yaml",
	}

	if homeDir != "" {
		paths = append(paths,
			filepath.Join(homeDir, ".wheel-installer", "config.yml"),
			filepath.Join(homeDir, ".wheel-installer", "config.yaml"),
			filepath.Join(homeDir, ".config", "wheel-installer", "config.yml"),
			filepath.Join(homeDir, ".config", "wheel-installer", "config.yaml"),
		)
	}

	paths = append(paths,
		"/etc/wheel-installer/config.yml",
		"/etc/wheel-installer/config.yaml",
	)

	return paths
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Convenience accessors usable anywhere in the codebase.
func Workers() int {
	return Global().Workers
}

func IndexURL() string {
	return strings.TrimRight(Global().IndexURL, "/")
}

func PythonVersion() string {
	return Global().PythonVersion
}

func Platforms() []string {
	return Global().Platforms
}

func CacheDir() (string, error) {
	cacheDir, err := filepath.Abs(Global().CacheDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	return cacheDir, nil
}

func TargetDir() (string, error) {
	targetDir, err := filepath.Abs(Global().TargetDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve target directory: %w", err)
	}
	return targetDir, nil
}

func TempDir() string {
	tempDir := Global().TempDir
	if tempDir == "" {
		return os.TempDir()
	}
	return tempDir
}

func LogLevel() string {
	return Global().Logging.Level
}

func IsDebugMode() bool {
	return Global().Logging.Level == "debug"
}

// Directory creation helpers.
func EnsureCacheDir() error {
	cacheDir, err := CacheDir()
	if err != nil {
		return fmt.Errorf("resolving cache directory: %w", err)
	}
	return ensureDirExists(cacheDir)
}

func EnsureTargetDir() error {
	targetDir, err := TargetDir()
	if err != nil {
		return fmt.Errorf("resolving target directory: %w", err)
	}
	return ensureDirExists(targetDir)
}

func ensureDirExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0700)
	}
	return nil
}
