// Package genconfig implements the genconfig command, which prints or
// writes the steamshots configuration.
package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/steamshots/pkg/config"
	"github.com/arthur-debert/steamshots/pkg/errors"
	"github.com/arthur-debert/steamshots/pkg/logging"
	"github.com/arthur-debert/steamshots/pkg/paths"
)

// Options holds options for the genconfig command.
type Options struct {
	// ConfigPath overrides the user config file location, both as the
	// source for --effective and as the --write target.
	ConfigPath string
	// Effective renders the merged configuration (defaults, user file,
	// environment) instead of the shipped defaults.
	Effective bool
	// Write saves the rendered config to the user config path instead of
	// printing it. An existing file is never overwritten.
	Write bool
}

// Result contains the rendered configuration and any files written.
type Result struct {
	Content      string
	FilesWritten []string
}

// GenConfig outputs or writes the configuration.
func GenConfig(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	var content []byte
	if opts.Effective {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		content, err = cfg.EffectiveTOML()
		if err != nil {
			return nil, err
		}
	} else {
		content = config.DefaultTOML()
	}

	result := &Result{Content: string(content)}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	target := opts.ConfigPath
	if target == "" {
		p, err := paths.New("")
		if err != nil {
			return nil, err
		}
		target = p.ConfigFilePath()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrFilesystemOp, "failed to create directory %s", dir)
	}

	if _, err := os.Stat(target); err == nil {
		logger.Warn().Str("path", target).Msg("Config file already exists, skipping")
		return result, nil
	}

	if err := os.WriteFile(target, content, 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFilesystemOp, "failed to write config to %s", target)
	}

	logger.Info().Str("path", target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, target)
	return result, nil
}
