package xconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

func isConfigFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// scanDirectory lists the config files directly inside dirname, sorted by name.
func scanDirectory(dirname string) ([]string, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isConfigFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dirname, entry.Name()))
	}

	slices.Sort(files)
	return files, nil
}

func scanDirectories(dirnames []string) ([]string, error) {
	var files []string

	for _, dirname := range dirnames {
		found, err := scanDirectory(dirname)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", dirname, err)
		}
		files = append(files, found...)
	}

	return files, nil
}
