package xconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envMacroRegex = regexp.MustCompile(`\$\{env:([^}]+)\}`)

type Options struct {
	files     []string
	dirs      []string
	dotenv    []string
	envPrefix string
	strict    bool
}

type Option func(*Options)

// WithFiles loads the given files in order; later files override earlier ones.
// Missing files are skipped.
func WithFiles(filenames ...string) Option {
	return func(o *Options) {
		o.files = append(o.files, filenames...)
	}
}

// WithDirs loads every .yaml, .yml and .json file found directly in each
// directory, sorted by name. Directories are loaded before WithFiles files.
// Missing directories are skipped.
func WithDirs(dirnames ...string) Option {
	return func(o *Options) {
		o.dirs = append(o.dirs, dirnames...)
	}
}

// WithDotenv reads KEY=VALUE files (".env" when none are given). Their
// variables feed WithEnv overrides and ${env:VAR} macros; a variable already
// set in the process environment wins. Missing files are skipped.
func WithDotenv(filenames ...string) Option {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	return func(o *Options) {
		o.dotenv = append(o.dotenv, filenames...)
	}
}

// WithEnv enables environment overrides for variables named PREFIX_FIELD_SUBFIELD.
func WithEnv(prefix string) Option {
	return func(o *Options) {
		o.envPrefix = prefix
	}
}

// WithStrict rejects unknown keys in config files.
func WithStrict() Option {
	return func(o *Options) {
		o.strict = true
	}
}

// Load fills config, which must be a non-nil pointer to a struct.
//
// Order: Default() methods, then directories, then files, then ${env:VAR}
// macro expansion in string fields, then environment overrides.
func Load(config interface{}, options ...Option) error {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}

	configElem, err := validateConfigPointer(config)
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	var lookup lookupFunc = os.LookupEnv
	if len(opts.dotenv) > 0 {
		vars, err := loadDotenvFiles(opts.dotenv)
		if err != nil {
			return err
		}
		lookup = withFallback(vars)
	}

	callDefaultMethodsRecursive(configElem)

	files, err := scanDirectories(opts.dirs)
	if err != nil {
		return err
	}
	files = append(files, opts.files...)

	for _, filename := range files {
		if err := loadFromFile(config, filename, opts.strict); err != nil {
			return fmt.Errorf("failed to load file %s: %w", filename, err)
		}
	}

	if len(files) > 0 {
		expandMacrosInValue(configElem, lookup)
	}

	if opts.envPrefix != "" {
		if err := loadFromEnv(configElem, strings.ToUpper(opts.envPrefix), lookup); err != nil {
			return fmt.Errorf("failed to load from environment: %w", err)
		}
	}

	return nil
}

// expandMacros replaces ${env:VAR} with the value of VAR. Unset or empty
// variables leave the macro as written.
func expandMacros(value string, lookup lookupFunc) string {
	return envMacroRegex.ReplaceAllStringFunc(value, func(match string) string {
		name := envMacroRegex.FindStringSubmatch(match)[1]
		if envValue, ok := lookup(name); ok && envValue != "" {
			return envValue
		}
		return match
	})
}

func expandMacrosInValue(v reflect.Value, lookup lookupFunc) {
	if !v.CanSet() {
		return
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() != "" {
			v.SetString(expandMacros(v.String(), lookup))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			expandMacrosInValue(v.Field(i), lookup)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			expandMacrosInValue(v.Index(i), lookup)
		}
	case reflect.Ptr:
		if !v.IsNil() {
			expandMacrosInValue(v.Elem(), lookup)
		}
	}
}

func validateConfigPointer(config interface{}) (reflect.Value, error) {
	configValue := reflect.ValueOf(config)
	if configValue.Kind() != reflect.Ptr || configValue.IsNil() {
		return reflect.Value{}, errors.New("config must be a non-nil pointer")
	}

	configElem := configValue.Elem()
	if configElem.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("config must point to a struct, got %s", configElem.Kind())
	}

	return configElem, nil
}

// callDefaultMethodsRecursive calls Default() on the struct and then on every
// nested struct field, so a parent default never hides a child default.
func callDefaultMethodsRecursive(v reflect.Value) {
	if v.Kind() != reflect.Struct || !v.CanAddr() {
		return
	}

	if defaulter, ok := v.Addr().Interface().(interface{ Default() }); ok {
		defaulter.Default()
	}

	for i := 0; i < v.NumField(); i++ {
		if field := v.Field(i); field.CanSet() {
			callDefaultMethodsRecursive(field)
		}
	}
}

// loadFromFile decodes YAML and JSON files. JSON is decoded by the YAML
// decoder as well, so durations such as "5s" work in both formats.
func loadFromFile(config interface{}, filename string, strict bool) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json", ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported file extension %s", ext)
	}
}
