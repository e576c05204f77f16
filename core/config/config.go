package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	EventLogName      = "events.log"
)

type Configuration struct {
	configFs afero.Fs

	LineMax         int    `json:"line_max" validate:"gte=2,lte=1048576"`
	ArgsMax         int    `json:"args_max" validate:"gte=2,lte=65536"`
	FailureExitCode int    `json:"failure_exit_code" validate:"gte=1,lte=255"`
	Prompt          string `json:"prompt"`
	ColorPrompt     bool   `json:"color_prompt"`
	EventLog        bool   `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	return c.configFs
}

// HasDir reports whether the configuration is backed by a directory.
func (c *Configuration) HasDir() bool {
	return c.configFs != nil
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, not backed by any directory.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
