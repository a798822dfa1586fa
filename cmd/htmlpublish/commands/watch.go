package commands

import (
	"context"
	"path/filepath"

	"git.home.luguber.info/inful/htmlpublish/internal/config"
	"git.home.luguber.info/inful/htmlpublish/internal/pipeline"
	"git.home.luguber.info/inful/htmlpublish/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BaseDir string `name:"base-dir" help:"Override base_dir from the configuration"`
}

// Run holds the tree lock for the whole session. The configuration is
// reloaded before every run, so edits to it or to templates take effect
// without a restart; the watched tree stays fixed.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(w.BaseDir)
	if err != nil {
		return err
	}
	baseDir := cfg.BaseDir

	run := func(ctx context.Context) error {
		current, err := root.loadConfig(baseDir)
		if err != nil {
			return err
		}
		report, err := pipeline.New(current, g.publisher()).
			WithRecorder(g.Recorder).
			Run(ctx)
		if report != nil {
			printReport(g.Out, report)
		}
		return err
	}

	return withLock(baseDir, func() error {
		return watch.New(baseDir, run, watchOptions(cfg, root.Config)).Run(g.Ctx)
	})
}

// watchOptions derives the ignore list and extra watched files from cfg.
func watchOptions(cfg *config.Config, configPath string) watch.Options {
	opts := watch.Options{Debounce: cfg.WatchDebounce()}
	if abs, err := filepath.Abs(configPath); err == nil {
		opts.Files = append(opts.Files, abs)
	}
	if cfg.AccessFile != nil {
		opts.IgnoreNames = append(opts.IgnoreNames, filepath.Base(cfg.AccessFile.Source))
		opts.Files = append(opts.Files, cfg.AccessFile.Source)
	}
	if cfg.Stylesheet != nil {
		opts.IgnoreNames = append(opts.IgnoreNames, filepath.Base(cfg.Stylesheet.Source))
		opts.Files = append(opts.Files, cfg.Stylesheet.Source)
	}
	templates := []*config.TemplateConfig{cfg.Doctype, cfg.Script, cfg.Favicon}
	if cfg.Analytics != nil {
		templates = append(templates, &cfg.Analytics.TemplateConfig)
	}
	for _, t := range templates {
		if t != nil && t.TemplateFile != "" {
			opts.Files = append(opts.Files, t.TemplateFile)
		}
	}
	return opts
}
