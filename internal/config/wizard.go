package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"
)

// Prompter asks the user questions.
type Prompter interface {
	Input(message, defaultValue string) (string, error)
	Select(message string, options []string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter asks on the terminal.
type SurveyPrompter struct {
	Options []survey.AskOpt
}

func (p SurveyPrompter) Input(message, defaultValue string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message, Default: defaultValue}, &answer, p.Options...)
	return answer, err
}

func (p SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Select{Message: message, Options: options, Default: defaultValue}, &answer, p.Options...)
	return answer, err
}

func (p SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	var answer bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: defaultValue}, &answer, p.Options...)
	return answer, err
}

// ConfigWizard provides an interactive setup experience for new projects
type ConfigWizard struct {
	prompter Prompter
	config   *Config
}

// NewConfigWizard creates a new configuration wizard. A nil prompter asks
// on the terminal.
func NewConfigWizard(prompter Prompter) *ConfigWizard {
	if prompter == nil {
		prompter = SurveyPrompter{}
	}
	return &ConfigWizard{prompter: prompter, config: Default()}
}

// Run asks for each setting, starting from the defaults, and validates the
// result.
func (w *ConfigWizard) Run() (*Config, error) {
	var err error
	c := w.config

	if c.Output.Dir, err = w.prompter.Input("Directory for emitted views", c.Output.Dir); err != nil {
		return nil, fmt.Errorf("output directory: %w", err)
	}
	if c.Output.Extension, err = w.prompter.Input("File extension", c.Output.Extension); err != nil {
		return nil, fmt.Errorf("output extension: %w", err)
	}
	if c.Output.Manifest, err = w.prompter.Confirm("Write a manifest.yml next to the views", c.Output.Manifest); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	if c.Naming.Strategy, err = w.prompter.Select("How are untagged fields named",
		[]string{StrategyCodec, StrategyLowerCamel}, c.Naming.Strategy); err != nil {
		return nil, fmt.Errorf("naming strategy: %w", err)
	}

	port, err := w.prompter.Input("Preview server port", strconv.Itoa(c.Preview.Port))
	if err != nil {
		return nil, fmt.Errorf("preview port: %w", err)
	}
	if c.Preview.Port, err = strconv.Atoi(port); err != nil {
		return nil, fmt.Errorf("preview port %q is not a number", port)
	}

	if err := validateConfig(c); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return c, nil
}

// WriteConfigFile writes the configuration to a YAML file. An existing file
// is only replaced when the user confirms.
func (w *ConfigWizard) WriteConfigFile(filename string) error {
	if _, err := os.Stat(filename); err == nil {
		overwrite, err := w.prompter.Confirm(fmt.Sprintf("Configuration file %s already exists. Overwrite?", filename), false)
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("configuration file already exists")
		}
	}

	content, err := Marshal(w.config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// Marshal renders config as the YAML file Load reads back.
func Marshal(config *Config) ([]byte, error) {
	body, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return append([]byte("# leafgen configuration\n"), body...), nil
}

// MarshalYAML writes the debounce as a duration string.
func (w WatchConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{"debounce": w.Debounce.String()}, nil
}
