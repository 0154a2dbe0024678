package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Command-line flag names understood by the resolver.
const (
	FlagExtensions   = "extensions"
	FlagExcludeDirs  = "exclude-dirs"
	FlagExcludeFiles = "exclude-files"
	FlagMaxSize      = "max-size"
	FlagConfig       = "config"
)

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagExtensions, "", "Comma-separated file extensions to include (e.g. .js,.ts or js,ts)")
	fs.String(FlagExcludeDirs, "", "Comma-separated directory names to skip (e.g. node_modules,dist)")
	fs.String(FlagExcludeFiles, "", "Comma-separated file names to skip (e.g. package-lock.json)")
	fs.String(FlagMaxSize, "", "Maximum file size in MB (default 10)")
	fs.String(FlagConfig, "", "Path to a JSON config file (default ./"+DefaultConfigFile+" if present)")
}

// FlagLayer builds a Layer from the flags the user set. Empty values are
// treated as unset. An invalid --max-size is reported in the returned error
// while the remaining flags are still applied.
func FlagLayer(fs *pflag.FlagSet) (Layer, error) {
	var layer Layer
	if fs == nil {
		return layer, nil
	}

	if value, ok := changedString(fs, FlagExtensions); ok {
		if exts := NormalizeExtensions([]string{value}); len(exts) > 0 {
			layer.Extensions = exts
		}
	}
	if value, ok := changedString(fs, FlagExcludeDirs); ok {
		if dirs := NormalizeNames([]string{value}); len(dirs) > 0 {
			layer.ExcludeDirs = dirs
		}
	}
	if value, ok := changedString(fs, FlagExcludeFiles); ok {
		if files := NormalizeNames([]string{value}); len(files) > 0 {
			layer.ExcludeFiles = files
		}
	}

	var errs []error
	if value, ok := changedString(fs, FlagMaxSize); ok && strings.TrimSpace(value) != "" {
		mb, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("--%s %q is not a number: %w", FlagMaxSize, value, err))
		case math.IsNaN(mb) || math.IsInf(mb, 0) || mb < 0:
			errs = append(errs, fmt.Errorf("--%s %q must be a finite, non-negative number", FlagMaxSize, value))
		default:
			size := MegabytesToBytes(mb)
			layer.MaxFileSize = &size
		}
	}

	return layer, errors.Join(errs...)
}

func changedString(fs *pflag.FlagSet, name string) (string, bool) {
	flag := fs.Lookup(name)
	if flag == nil || !flag.Changed {
		return "", false
	}
	return flag.Value.String(), true
}
