package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config file keys. Viper matches keys case-insensitively.
const (
	keyExtensions   = "extensions"
	keyExcludeDirs  = "excludeDirs"
	keyExcludeFiles = "excludeFiles"
	keyMaxFileSize  = "maxFileSize"
)

// LoadFile parses a config file into a Layer. Files without a recognized
// extension are parsed as JSON. Keys absent from the file stay unset.
func LoadFile(path string) (Layer, error) {
	v := viper.New()
	v.SetConfigFile(path)
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "json", "yaml", "yml", "toml":
	default:
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return Layer{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var layer Layer
	if v.IsSet(keyExtensions) {
		layer.Extensions = NormalizeExtensions(v.GetStringSlice(keyExtensions))
	}
	if v.IsSet(keyExcludeDirs) {
		layer.ExcludeDirs = NormalizeNames(v.GetStringSlice(keyExcludeDirs))
	}
	if v.IsSet(keyExcludeFiles) {
		layer.ExcludeFiles = NormalizeNames(v.GetStringSlice(keyExcludeFiles))
	}
	if v.IsSet(keyMaxFileSize) {
		size, err := cast.ToInt64E(v.Get(keyMaxFileSize))
		if err != nil {
			return layer, fmt.Errorf("invalid %s in %s: %w", keyMaxFileSize, path, err)
		}
		if size < 0 {
			return layer, fmt.Errorf("invalid %s in %s: %d is negative", keyMaxFileSize, path, size)
		}
		layer.MaxFileSize = &size
	}
	return layer, nil
}

// Resolve builds the effective configuration for a run:
// defaults, then the config file, then flags the user set explicitly.
// Problems with the config file or flag values are logged and never fatal.
func Resolve(flags *pflag.FlagSet, logger *zap.Logger) Config {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg := Defaults()
	cfg = cfg.Merge(fileLayer(flags, logger))

	layer, err := FlagLayer(flags)
	if err != nil {
		logger.Warn("Ignoring invalid command-line value", zap.Error(err))
	}
	cfg = cfg.Merge(layer)

	logger.Debug("Resolved configuration",
		zap.Strings("extensions", cfg.Extensions),
		zap.Strings("excludeDirs", cfg.ExcludeDirs),
		zap.Strings("excludeFiles", cfg.ExcludeFiles),
		zap.Int64("maxFileSize", cfg.MaxFileSize))
	return cfg
}

// fileLayer loads --config, or the default config file when it exists.
func fileLayer(flags *pflag.FlagSet, logger *zap.Logger) Layer {
	path := ""
	if flags != nil {
		path, _ = flags.GetString(FlagConfig)
	}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return Layer{}
		}
	}

	layer, err := LoadFile(path)
	if err != nil {
		logger.Warn("Failed to load configuration, using defaults",
			zap.String("file", path),
			zap.Error(err))
		return Layer{}
	}
	logger.Info("Using config file", zap.String("file", path))
	return layer
}
