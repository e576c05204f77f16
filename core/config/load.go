package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads the configuration from the root of fs.
func LoadFs(fs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ConfigurationName, err)
	}
	out.configFs = fs
	return &out, nil
}

// Initialize writes the default configuration into dir if it doesn't already
// have one and loads the result.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return InitializeFs(afero.NewBasePathFs(fs, dir), logger)
}

// InitializeFs is Initialize over an arbitrary filesystem.
func InitializeFs(fs afero.Fs, logger *log.Logger) (*Configuration, error) {
	exists, err := afero.Exists(fs, ConfigurationName)
	switch {
	case err != nil:
		return nil, err
	case exists:
		logger.Printf("%s already exists, leaving it as-is\n", ConfigurationName)
	default:
		logger.Printf("Writing %s\n", ConfigurationName)
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return LoadFs(fs)
}
