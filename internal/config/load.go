package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/codeintel/internal/config/loader"
)

// maxIncludeDepth bounds nested include directives.
const maxIncludeDepth = 8

// Load reads the configuration file at path and the environment on top of
// the defaults. An empty path or a missing file yields the defaults plus the
// environment. The result is validated.
func Load(path string) (Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading files from fsys.
func LoadFS(fsys loader.FileSystem, path string) (Config, error) {
	var fileCfg map[string]any
	if path != "" {
		var err error
		fileCfg, err = loader.NewTOMLLoaderWithFS(fsys, path).LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return Config{}, err
		}
	}

	envCfg, err := loader.NewEnvLoader(loader.DefaultEnvPrefix).Load()
	if err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	cfg, err := Decode(loader.Merge(fileCfg, envCfg))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode applies a merged settings map on top of Default.
func Decode(settings map[string]any) (Config, error) {
	cfg := Default()
	if len(settings) == 0 {
		return cfg, nil
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return Config{}, fmt.Errorf("encoding settings: %w", err)
	}
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}
