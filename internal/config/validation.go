package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/conneroisu/leafgen/internal/logging"
	"github.com/conneroisu/leafgen/internal/validation"
)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	write := func(title string, issues []ValidationError) {
		if len(issues) == 0 {
			return
		}
		builder.WriteString(title + ":\n")
		for _, issue := range issues {
			builder.WriteString(fmt.Sprintf("  - %s: %s\n", issue.Field, issue.Message))
			for _, suggestion := range issue.Suggestions {
				builder.WriteString(fmt.Sprintf("    hint: %s\n", suggestion))
			}
		}
	}

	write("Validation errors", vr.Errors)
	write("Validation warnings", vr.Warnings)
	return builder.String()
}

// ValidateConfigWithDetails checks every section and collects errors and
// warnings.
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{}

	validateOutputConfig(&config.Output, result)
	validateNamingConfig(&config.Naming, result)
	validatePreviewConfig(&config.Preview, result)
	validateWatchConfig(&config.Watch, result)
	validateLogConfig(&config.Log, result)

	return result
}

func validateOutputConfig(config *OutputConfig, result *ValidationResult) {
	if err := validation.ValidatePath(config.Dir); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "output.dir",
			Value:   config.Dir,
			Message: err.Error(),
			Suggestions: []string{
				"Use a relative path inside the project, e.g. " + DefaultOutputDir,
			},
		})
	} else if _, err := os.Stat(config.Dir); os.IsNotExist(err) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:       "output.dir",
			Value:       config.Dir,
			Message:     "directory does not exist yet and will be created",
			Suggestions: []string{"Check the path if you expected existing views there"},
		})
	}

	if err := validation.ValidateExtension(config.Extension); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "output.extension",
			Value:       config.Extension,
			Message:     err.Error(),
			Suggestions: []string{"Use " + DefaultExtension},
		})
	} else if config.Extension != DefaultExtension {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:       "output.extension",
			Value:       config.Extension,
			Message:     "the template engine looks for " + DefaultExtension + " files by default",
			Suggestions: []string{"Make sure the engine is configured for " + config.Extension},
		})
	}
}

func validateNamingConfig(config *NamingConfig, result *ValidationResult) {
	strategies := []string{StrategyCodec, StrategyLowerCamel}
	if !slices.Contains(strategies, config.Strategy) {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "naming.strategy",
			Value:       config.Strategy,
			Message:     fmt.Sprintf("unknown naming strategy %q", config.Strategy),
			Suggestions: []string{"Available strategies: " + strings.Join(strategies, ", ")},
		})
	}

	if strings.ContainsAny(config.Tag, " :\"") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "naming.tag",
			Value:   config.Tag,
			Message: "tag key must be a bare struct tag name",
			Suggestions: []string{
				"Use json to follow encoding/json",
				"Use yaml to follow gopkg.in/yaml.v3",
			},
		})
	}
}

func validatePreviewConfig(config *PreviewConfig, result *ValidationResult) {
	if config.Port < 0 || config.Port > 65535 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "preview.port",
			Value:   config.Port,
			Message: fmt.Sprintf("port %d is not in valid range 0-65535", config.Port),
			Suggestions: []string{
				"Port 0 lets the system pick a free port",
			},
		})
	} else if config.Port > 0 && config.Port < 1024 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "preview.port",
			Value:   config.Port,
			Message: "port below 1024 requires elevated privileges",
		})
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", "/"}
	for _, char := range dangerousChars {
		if strings.Contains(config.Host, char) {
			result.Errors = append(result.Errors, ValidationError{
				Field:       "preview.host",
				Value:       config.Host,
				Message:     "host contains dangerous character: " + char,
				Suggestions: []string{"Use 'localhost' for local development"},
			})
			break
		}
	}
}

func validateWatchConfig(config *WatchConfig, result *ValidationResult) {
	if config.Debounce < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "watch.debounce",
			Value:   config.Debounce,
			Message: "debounce must not be negative",
		})
	}
}

func validateLogConfig(config *LogConfig, result *ValidationResult) {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:       "log.level",
			Value:       config.Level,
			Message:     err.Error(),
			Suggestions: []string{"Use one of debug, info, warn, error"},
		})
	}
	if config.Format != "text" && config.Format != "json" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "log.format",
			Value:   config.Format,
			Message: fmt.Sprintf("unknown log format %q", config.Format),
		})
	}
}
