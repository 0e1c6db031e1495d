package xconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"maps"
	"os"
	"strings"
)

// parseDotenv reads KEY=VALUE lines. Blank lines and lines starting with #
// are ignored, an "export " prefix is allowed, and one pair of matching
// single or double quotes around the value is removed.
func parseDotenv(data []byte) (map[string]string, error) {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q", lineNum, line)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNum)
		}

		vars[key] = stripQuotes(strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return vars, nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// loadDotenvFiles merges the files in order; later files override earlier ones.
func loadDotenvFiles(filenames []string) (map[string]string, error) {
	vars := make(map[string]string)

	for _, filename := range filenames {
		data, err := os.ReadFile(filename)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read dotenv file %s: %w", filename, err)
		}

		parsed, err := parseDotenv(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dotenv file %s: %w", filename, err)
		}

		maps.Copy(vars, parsed)
	}

	return vars, nil
}
