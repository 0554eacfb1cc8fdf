package utils

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

func GenerateRandomFilename(extension string) string {
	id := uuid.New()
	return fmt.Sprintf("%s.%s", id.String(), extension)
}

// CountFiles counts the regular files directly inside dir. Subdirectories are skipped.
func CountFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read directory '%s': %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		count++
	}
	return count, nil
}

// MaskApiKey keeps the last four characters of a key for log lines.
func MaskApiKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// Excel rejects a sheet name that starts or ends with an apostrophe.
func trimSheetName(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\'' || unicode.IsSpace(r)
	})
}

// SheetName trims a name to the 31 characters allowed for xlsx sheet names
// and swaps out the characters Excel rejects.
func SheetName(name string) string {
	replacer := strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")")
	s := trimSheetName(replacer.Replace(name))
	if runes := []rune(s); len(runes) > 31 {
		s = trimSheetName(string(runes[:31]))
	}
	if s == "" {
		s = "Sheet"
	}
	return s
}
