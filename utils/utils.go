package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// ValidateFile checks that filename names a readable, non-directory file and
// returns its size.
func ValidateFile(filename string) (int64, error) {
	if filename == "" {
		return 0, fmt.Errorf("filename cannot be empty")
	}

	info, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file does not exist: %s", filename)
		}
		return 0, fmt.Errorf("cannot access file %s: %w", filename, err)
	}

	if info.IsDir() {
		return 0, fmt.Errorf("path is a directory, not a file: %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("cannot open file %s: %w", filename, err)
	}
	defer file.Close()

	return info.Size(), nil
}

func EnsureDirectory(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	absPath, err := filepath.Abs(dirPath)
	if err != nil {
		return fmt.Errorf("cannot resolve absolute path for %s: %w", dirPath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", absPath, err)
	}

	return nil
}

// ExpandPath replaces a leading ~/ with the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}

	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.1f %s", float64(size)/float64(div), units[exp])
}

func ParseCommaSeparatedList(input string) []string {
	if input == "" {
		return nil
	}

	parts := strings.Split(input, ",")
	var result []string

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func SanitizeFilename(filename string) string {
	filename = strings.TrimSpace(filename)

	filename = invalidFilenameChars.ReplaceAllString(filename, "_")

	if len(filename) > 255 {
		ext := filepath.Ext(filename)
		base := filename[:255-len(ext)]
		filename = base + ext
	}

	if filename == "" {
		filename = "unnamed"
	}

	return filename
}

// CleanPath normalises a path pasted into the terminal. Drag-and-drop pastes
// arrive quoted or with backslash-escaped spaces depending on the terminal.
func CleanPath(input string) string {
	cleaned := strings.TrimSpace(input)
	cleaned = strings.Trim(cleaned, "\"'")
	cleaned = strings.TrimPrefix(cleaned, "file://")
	cleaned = strings.ReplaceAll(cleaned, `\ `, " ")
	return ExpandPath(cleaned)
}

func TruncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(r[:maxLength])
	}

	return string(r[:maxLength-3]) + "..."
}

// DatedFilename builds "<base>-YYYY-MM-DD<ext>" for the given day.
func DatedFilename(base string, now time.Time, extension string) string {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return fmt.Sprintf("%s-%s%s", SanitizeFilename(base), now.Format("2006-01-02"), extension)
}
