package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// readDataset collects values from args, or from file when set, or from
// stdin when neither is given.
func readDataset(args []string, file string, stdin io.Reader) ([]float64, error) {
	if file != "" && len(args) > 0 {
		return nil, fmt.Errorf("values and --file are mutually exclusive")
	}

	if len(args) > 0 {
		return parseValues(strings.Join(args, " "))
	}

	src := stdin
	if file != "" {
		f, err := openInput(file, stdin)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src = f
	}

	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	return parseValues(string(raw))
}

// parseValues splits s on commas and whitespace and parses every field as a
// float. NaN and Inf are accepted as strconv spells them.
func parseValues(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	values := make([]float64, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) is not a number", i, field)
		}
		values = append(values, v)
	}

	return values, nil
}
