package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Luna88k/msbuild/config"
	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/filter"
	"github.com/Luna88k/msbuild/logger"
	"github.com/Luna88k/msbuild/metadata"
	"github.com/Luna88k/msbuild/surface"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/synth"
)

// result is one rendered surface.
type result struct {
	Assembly *symbol.Assembly
	Text     string
	Stats    surface.Stats
}

// render loads manifest and renders its surface under cfg.
func render(ctx context.Context, cfg *config.Config, cfgPath, manifest string) (*result, error) {
	start := time.Now()

	asm, err := metadata.Load(manifest)
	if err != nil {
		return nil, err
	}
	if c := cfg.Generate.VersionConstraint; c != "" {
		if err := metadata.CheckVersion(asm, c); err != nil {
			return nil, err
		}
	}

	f, err := buildFilter(cfg, cfgPath)
	if err != nil {
		return nil, err
	}

	g := surface.New(synth.New(nil), f, surface.Options{
		Workers:         cfg.Generate.Workers,
		ContinueOnError: cfg.Generate.ContinueOnError,
	})
	unit, err := g.Generate(ctx, asm)
	if err != nil {
		return nil, err
	}

	var header []string
	if cfg.Generate.Header {
		header = surface.Header(asm)
	}

	logger.Debugw("Rendered surface",
		logger.FieldFile, manifest,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return &result{Assembly: asm, Text: surface.Render(unit, header), Stats: g.Stats()}, nil
}

// buildFilter composes the configured filters. Relative list paths are
// resolved against the config file's directory.
func buildFilter(cfg *config.Config, cfgPath string) (filter.Filter, error) {
	filters := []filter.Filter{filter.NewAccessibility(cfg.Filter.IncludeInternals)}
	if len(cfg.Filter.ExcludeAttributes) > 0 {
		filters = append(filters, filter.ExcludeAttributes(cfg.Filter.ExcludeAttributes...))
	}
	if p := cfg.Filter.ExcludeAPIList; p != "" {
		list, err := filter.LoadAPIList(relativeTo(cfgPath, p))
		if err != nil {
			return nil, errors.WithHint(err, "check filter.exclude_api_list in genapi.toml")
		}
		filters = append(filters, list)
	}
	return filter.Cached(filter.All(filters...)), nil
}

func relativeTo(cfgPath, p string) string {
	if cfgPath == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(cfgPath), p)
}

// watchedFiles lists the inputs whose change invalidates the surface.
func watchedFiles(cfg *config.Config, cfgPath, manifest string) []string {
	files := []string{manifest}
	if p := cfg.Filter.ExcludeAPIList; p != "" {
		files = append(files, relativeTo(cfgPath, p))
	}
	return files
}
