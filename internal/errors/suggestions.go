package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorSuggestion represents a suggestion for fixing an error
type ErrorSuggestion struct {
	Title       string
	Description string
	Command     string
	Example     string
}

// Catalogue lists the names of known views.
type Catalogue interface {
	Names() []string
}

// Suggest returns hints for a classified error. catalogue may be nil.
func Suggest(err *LeafError, catalogue Catalogue) []ErrorSuggestion {
	if err == nil {
		return nil
	}

	switch err.Code {
	case ErrCodeKeyMismatch:
		want, _ := err.Context["want"].(string)
		got, _ := err.Context["got"].(string)
		switch err.Context["op"] {
		case "foreach":
			return []ErrorSuggestion{
				{
					Title:       "Align the loop with the embedded template",
					Description: fmt.Sprintf("The collection's singular form is %q but the template reads %q", got, want),
					Example:     fmt.Sprintf("rename the collection field so it pluralizes to %q, or declare the pair with leaf.WithPluralRule", want),
				},
			}
		case "embed":
			return []ErrorSuggestion{
				{
					Title:       "Add the content field to the embedding view",
					Description: fmt.Sprintf("The embedded template reads %q but the embedding view only has %s", want, got),
					Example:     fmt.Sprintf("a field tagged `json:\"%s\"` of the template's content type", lastSegment(want)),
				},
			}
		default:
			return []ErrorSuggestion{
				{
					Title:       "Check the content type",
					Description: fmt.Sprintf("Expected %s, got %s", want, got),
				},
			}
		}

	case ErrCodeUnresolvedField:
		return []ErrorSuggestion{
			{
				Title:       "Return a field directly from the selector",
				Description: "Selectors must return one exported field, not a computed value or a constant",
				Example:     "func(t *Page) string { return t.Content.Title }",
			},
			{
				Title:       "Check the struct tags",
				Description: "Fields tagged `json:\"-\"` and unexported fields cannot be referenced",
			},
		}

	case ErrCodeViewNotFound:
		suggestions := []ErrorSuggestion{
			{
				Title:   "List the registered views",
				Command: "leafgen list",
			},
		}
		if catalogue != nil {
			if matches := similarNames(err.View, catalogue.Names()); len(matches) > 0 {
				suggestions = append([]ErrorSuggestion{{
					Title:       "Did you mean",
					Description: strings.Join(matches, ", "),
				}}, suggestions...)
			}
		}
		return suggestions

	case ErrCodeConfigInvalid:
		return []ErrorSuggestion{
			{
				Title:   "Check the configuration file",
				Command: "cat .leafgen.yml",
				Example: "output:\n  dir: Resources/Views\n  extension: .leaf",
			},
		}
	}

	return nil
}

// similarNames returns the names sharing a case-insensitive prefix or
// substring with name.
func similarNames(name string, names []string) []string {
	needle := strings.ToLower(name)
	if needle == "" {
		return nil
	}

	var out []string
	for _, candidate := range names {
		lower := strings.ToLower(candidate)
		if strings.Contains(lower, needle) || strings.Contains(needle, lower) {
			out = append(out, candidate)
		}
	}
	sort.Strings(out)
	return out
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// FormatSuggestions formats suggestions into a user-friendly string
func FormatSuggestions(title string, suggestions []ErrorSuggestion) string {
	if len(suggestions) == 0 {
		return title
	}

	var output strings.Builder
	output.WriteString(title + "\n\n")
	output.WriteString("Suggestions:\n")

	for i, suggestion := range suggestions {
		output.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion.Title))
		if suggestion.Description != "" {
			output.WriteString(fmt.Sprintf("     %s\n", suggestion.Description))
		}
		if suggestion.Command != "" {
			output.WriteString(fmt.Sprintf("     Run: %s\n", suggestion.Command))
		}
		if suggestion.Example != "" {
			output.WriteString(fmt.Sprintf("     Example: %s\n", suggestion.Example))
		}
		output.WriteString("\n")
	}

	return output.String()
}
