package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// DefaultExtensions are the input formats picked up from the data directory
var DefaultExtensions = []string{".xlsx", ".xls"}

// Locate returns the single file in dir whose extension is accepted.
// Zero or several candidates are an *entities.InputFileError.
func Locate(dir string, extensions []string) (string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to list input directory %s: %w", dir, err)
	}

	var matches []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if hasExtension(entry.Name(), extensions) {
			matches = append(matches, entry.Name())
		}
	}

	if len(matches) != 1 {
		return "", &entities.InputFileError{Dir: dir, Extensions: extensions, Matches: matches}
	}
	return filepath.Join(dir, matches[0]), nil
}

// NormalizeExtensions lowercases and dot-prefixes a list such as "xlsx, .XLS"
func NormalizeExtensions(raw []string) []string {
	var out []string
	for _, ext := range raw {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func hasExtension(name string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, accepted := range extensions {
		if ext == accepted {
			return true
		}
	}
	return false
}
