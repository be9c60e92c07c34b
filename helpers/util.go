package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var newlineRuns = regexp.MustCompile(`[\r\n]+`)

func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

// CleanWhitespace collapses a cell value wrapped across multiple lines into a
// single space-separated string. Directory name cells carry stray newlines and
// padding around each fragment.
func CleanWhitespace(target string) string {
	parts := newlineRuns.Split(target, -1)
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, " ")
}
