package commands

import (
	"fmt"

	"git.home.luguber.info/inful/htmlpublish/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	if err := config.Init(root.Config, i.Force); err != nil {
		return err
	}
	_, _ = okColor.Fprintf(g.Out, "Wrote %s\n", root.Config)
	_, _ = fmt.Fprintln(g.Out, "Edit base_dir and the step sections, then run: htmlpublish run")
	return nil
}
