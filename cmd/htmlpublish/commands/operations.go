package commands

import (
	"path/filepath"

	"git.home.luguber.info/inful/htmlpublish/internal/publish"
)

// AccessFileCmd implements the 'access-file' command.
type AccessFileCmd struct {
	BaseDir string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	File    string `arg:"" name:"file" help:"Access file to copy (e.g. .htaccess)" type:"path"`
}

func (c *AccessFileCmd) Run(g *Global, _ *CLI) error {
	return runOperation(g, publish.OpAccessFile, c.BaseDir, func(p *publish.Publisher) ([]string, error) {
		return p.AddAccessFile(c.BaseDir, c.File)
	})
}

// StylesheetCmd implements the 'stylesheet' command.
type StylesheetCmd struct {
	BaseDir    string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	File       string `arg:"" name:"file" help:"Stylesheet to copy" type:"path"`
	EntryPoint string `name:"entry-point" help:"Directories holding a file ending with this name receive the stylesheet" default:"index.html"`
	Subdir     string `name:"subdir" help:"Subdirectory that receives the stylesheet" default:"css"`
}

func (c *StylesheetCmd) Run(g *Global, _ *CLI) error {
	return runOperation(g, publish.OpStylesheet, c.BaseDir, func(p *publish.Publisher) ([]string, error) {
		return p.WithStylesheetDir(c.Subdir).AddStylesheet(c.BaseDir, c.File, c.EntryPoint)
	})
}

// DoctypeCmd implements the 'doctype' command.
type DoctypeCmd struct {
	BaseDir       string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	TemplateFlags `embed:""`
}

func (c *DoctypeCmd) Run(g *Global, _ *CLI) error {
	return runTemplate(g, publish.OpDoctype, c.BaseDir, c.TemplateFlags, (*publish.Publisher).AddDoctype)
}

// ScriptCmd implements the 'script' command.
type ScriptCmd struct {
	BaseDir       string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	TemplateFlags `embed:""`
}

func (c *ScriptCmd) Run(g *Global, _ *CLI) error {
	return runTemplate(g, publish.OpScript, c.BaseDir, c.TemplateFlags, (*publish.Publisher).AddScript)
}

// FaviconCmd implements the 'favicon' command.
type FaviconCmd struct {
	BaseDir       string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	TemplateFlags `embed:""`
}

func (c *FaviconCmd) Run(g *Global, _ *CLI) error {
	return runTemplate(g, publish.OpFavicon, c.BaseDir, c.TemplateFlags, (*publish.Publisher).AddFavicon)
}

// AnalyticsCmd implements the 'analytics' command.
type AnalyticsCmd struct {
	BaseDir       string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	ID            string `name:"id" help:"Tracking id substituted for ANALYTICS-ID in the template" required:"" env:"HTMLPUBLISH_ANALYTICS_ID"`
	TemplateFlags `embed:""`
}

func (c *AnalyticsCmd) Run(g *Global, _ *CLI) error {
	return runTemplate(g, publish.OpAnalytics, c.BaseDir, c.TemplateFlags,
		func(p *publish.Publisher, dir, tmpl string) ([]string, error) {
			return p.AddAnalytics(dir, c.ID, tmpl)
		})
}

// UpdateCmd implements the 'update' command.
type UpdateCmd struct {
	BaseDir       string `arg:"" name:"base-dir" help:"Root of the documentation tree" type:"path"`
	Tag           string `name:"tag" help:"Literal text to replace (first occurrence per file)" required:""`
	Force         bool   `name:"force" help:"Rewrite files that already contain the replacement"`
	TemplateFlags `embed:""`
}

func (c *UpdateCmd) Run(g *Global, _ *CLI) error {
	tmpl, err := c.Content()
	if err != nil {
		return err
	}
	return runOperation(g, publish.OpUpdate, c.BaseDir, func(p *publish.Publisher) ([]string, error) {
		return p.SkipIfPresent(!c.Force).UpdateHTML(c.BaseDir, c.Tag, tmpl)
	})
}

func runTemplate(g *Global, op, baseDir string, flags TemplateFlags,
	apply func(p *publish.Publisher, dir, tmpl string) ([]string, error),
) error {
	tmpl, err := flags.Content()
	if err != nil {
		return err
	}
	return runOperation(g, op, baseDir, func(p *publish.Publisher) ([]string, error) {
		return apply(p, baseDir, tmpl)
	})
}

// runOperation runs one publishing operation under the tree lock and prints
// the affected paths.
func runOperation(g *Global, op, baseDir string, apply func(p *publish.Publisher) ([]string, error)) error {
	return withLock(filepath.Clean(baseDir), func() error {
		paths, err := apply(g.publisher())
		if err != nil {
			return err
		}
		printPaths(g.Out, op, paths)
		return nil
	})
}
