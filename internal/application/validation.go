package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "taskID" -> "task ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"taskID":   "task ID",
		"stepID":   "step ID",
		"sourceID": "source ID",
		"targetID": "target ID",
		"label":    "label",
		"title":    "title",
		"query":    "query",
		"prompt":   "prompt",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}

// ValidateStatus checks that a raw status string parses to a known Status
func ValidateStatus(fieldName, raw string) (Status, error) {
	status := ParseStatus(raw)
	if status == "" {
		return "", &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown status %q (want not_started, in_progress or completed)", raw),
		}
	}
	return status, nil
}
