// config.go: settings struct for the jku2jams converter and the functions to
// load them from defaults, config file and environment.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for the optional rotating log file.
type LogConfig struct {
	Enabled    bool   // true to write a JSON log file in addition to console output
	Path       string // log file path
	MaxSize    int    // max size in megabytes before rotation
	MaxBackups int    // number of rotated files to keep
	MaxAge     int    // max age in days of rotated files
}

// MainSettings contains application level settings.
type MainSettings struct {
	Name string    // application name used in log records
	Log  LogConfig // log file settings
}

// DatasetSettings control ground truth discovery.
type DatasetSettings struct {
	// AnnotationTypes is the fixed, ordered list of annotation type
	// directories considered under each piece.
	AnnotationTypes []string `validate:"required,min=1,dive,oneof=monophonic polyphonic"`
	// PolyphonicAnnotators is the allow-list applied to annotator
	// directories of polyphonic annotations. Monophonic annotators are
	// never filtered.
	PolyphonicAnnotators []string `validate:"required,min=1"`
}

// CuratorSettings identify the curator recorded in output metadata.
type CuratorSettings struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
}

// AnnotationSettings are the fixed metadata values stamped on every
// produced JAMS annotation.
type AnnotationSettings struct {
	Namespace string `validate:"required"`
	Version   string `validate:"required"`
	Corpus    string `validate:"required"`
	Curator   CuratorSettings
}

// OutputSettings control where and how documents are written.
type OutputSettings struct {
	Indent bool // pretty-print the JSON output
}

// Settings contains all runtime configuration for the converter.
type Settings struct {
	Debug bool // true to enable debug level logging

	Main       MainSettings
	Dataset    DatasetSettings
	Annotation AnnotationSettings
	Output     OutputSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.Mutex
)

// Load reads the configuration file and environment variables into a new
// Settings instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter,
	// function defined in defaults.go
	setDefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig writes the embedded default config to the first
// default config path and loads it.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(getDefaultConfig()), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// GetDefaultConfigPaths returns the ordered list of directories searched for
// a config file: the user config directory first, then the working directory.
func GetDefaultConfigPaths() ([]string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error resolving user config dir: %w", err)
	}
	return []string{
		filepath.Join(configDir, "jku2jams"),
		".",
	}, nil
}

// SaveAs writes the given settings as YAML to the given path, creating
// parent directories as needed.
func SaveAs(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// Setting returns the current settings instance, loading it on first use.
func Setting() *Settings {
	settingsMutex.Lock()
	loaded := settingsInstance != nil
	settingsMutex.Unlock()
	if !loaded {
		if _, err := Load(); err != nil {
			log.Fatalf("Error loading settings: %v", err)
		}
	}
	return settingsInstance
}
