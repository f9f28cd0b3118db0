package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter answers from fixed maps keyed by message and records
// what was asked.
type scriptedPrompter struct {
	inputs   map[string]string
	selects  map[string]string
	confirms map[string]bool
	fail     string
	asked    []string
}

func (s *scriptedPrompter) Input(message, defaultValue string) (string, error) {
	s.asked = append(s.asked, message)
	if message == s.fail {
		return "", errors.New("interrupt")
	}
	if answer, ok := s.inputs[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func (s *scriptedPrompter) Select(message string, _ []string, defaultValue string) (string, error) {
	s.asked = append(s.asked, message)
	if message == s.fail {
		return "", errors.New("interrupt")
	}
	if answer, ok := s.selects[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func (s *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	s.asked = append(s.asked, message)
	if message == s.fail {
		return false, errors.New("interrupt")
	}
	if answer, ok := s.confirms[message]; ok {
		return answer, nil
	}
	return defaultValue, nil
}

func TestWizardDefaults(t *testing.T) {
	prompter := &scriptedPrompter{}
	cfg, err := NewConfigWizard(prompter).Run()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Len(t, prompter.asked, 5)
}

func TestWizardAnswers(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs: map[string]string{
			"Directory for emitted views": "views",
			"Preview server port":         "9100",
		},
		selects: map[string]string{
			"How are untagged fields named": StrategyLowerCamel,
		},
		confirms: map[string]bool{
			"Write a manifest.yml next to the views": false,
		},
	}

	cfg, err := NewConfigWizard(prompter).Run()
	require.NoError(t, err)
	assert.Equal(t, "views", cfg.Output.Dir)
	assert.False(t, cfg.Output.Manifest)
	assert.Equal(t, StrategyLowerCamel, cfg.Naming.Strategy)
	assert.Equal(t, 9100, cfg.Preview.Port)
}

func TestWizardErrors(t *testing.T) {
	tests := []struct {
		name     string
		prompter *scriptedPrompter
		contains string
	}{
		{
			name:     "interrupted",
			prompter: &scriptedPrompter{fail: "File extension"},
			contains: "output extension",
		},
		{
			name:     "port not a number",
			prompter: &scriptedPrompter{inputs: map[string]string{"Preview server port": "eighty"}},
			contains: "not a number",
		},
		{
			name:     "invalid directory",
			prompter: &scriptedPrompter{inputs: map[string]string{"Directory for emitted views": "../escape"}},
			contains: "output.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfigWizard(tt.prompter).Run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestWriteConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".leafgen.yml")

	wizard := NewConfigWizard(&scriptedPrompter{})
	_, err := wizard.Run()
	require.NoError(t, err)
	require.NoError(t, wizard.WriteConfigFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dir: Resources/Views")

	declined := NewConfigWizard(&scriptedPrompter{})
	err = declined.WriteConfigFile(path)
	assert.EqualError(t, err, "configuration file already exists")

	accepted := NewConfigWizard(&scriptedPrompter{confirms: map[string]bool{
		"Configuration file " + path + " already exists. Overwrite?": true,
	}})
	accepted.config.Output.Dir = "views"
	require.NoError(t, accepted.WriteConfigFile(path))

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dir: views")
}
