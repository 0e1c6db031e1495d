package main

import (
	"fmt"

	"github.com/vitalvas/infotheory/server"
	"github.com/vitalvas/infotheory/xconfig"
	"github.com/vitalvas/infotheory/xlogger"
)

const envPrefix = "INFOTHEORY"

type Config struct {
	Logger xlogger.Config `yaml:"logger" json:"logger"`
	Server server.Config  `yaml:"server" json:"server"`
}

// configSources lists where serve reads its configuration from.
type configSources struct {
	files    []string
	dirs     []string
	envFiles []string
}

func loadConfig(src configSources) (Config, error) {
	var conf Config

	opts := []xconfig.Option{
		xconfig.WithDirs(src.dirs...),
		xconfig.WithFiles(src.files...),
		xconfig.WithEnv(envPrefix),
	}
	if len(src.envFiles) > 0 {
		opts = append(opts, xconfig.WithDotenv(src.envFiles...))
	}

	if err := xconfig.Load(&conf, opts...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, nil
}
