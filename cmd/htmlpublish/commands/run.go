package commands

import (
	"git.home.luguber.info/inful/htmlpublish/internal/pipeline"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	BaseDir string `name:"base-dir" help:"Override base_dir from the configuration"`
}

func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(r.BaseDir)
	if err != nil {
		return err
	}
	return withLock(cfg.BaseDir, func() error {
		report, err := pipeline.New(cfg, g.publisher()).
			WithRecorder(g.Recorder).
			Run(g.Ctx)
		if report != nil {
			printReport(g.Out, report)
		}
		return err
	})
}
