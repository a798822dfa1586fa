package config

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

const exampleConfig = `# htmlpublish configuration.
# Relative paths are resolved against the directory of this file.
# ${VAR} references are expanded from the environment (.env and .env.local are loaded).

# Generated documentation tree (override with HTMLPUBLISH_BASE_DIR).
base_dir: ./site

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json

# Copied into the base directory and every directory below it.
access_file:
  source: ./assets/.htaccess

# Copied into <dir>/css/ for every directory holding an entry point.
stylesheet:
  source: ./assets/coredoc.css
  entry_point: index.html
  subdir: css

# Each template replaces the first occurrence of its tag in every .html file.
doctype:   # tag: <html>
  template: "<!DOCTYPE html>\n<html>"

script:    # tag: </head>
  template: "<script type=\"text/javascript\" src=\"js/toc.js\"></script>\n</head>"

favicon:   # tag: </head>
  template: "<link rel=\"shortcut icon\" href=\"favicon.ico\">\n</head>"

# ANALYTICS-ID in the template is replaced with id (override with HTMLPUBLISH_ANALYTICS_ID).
# analytics:  # tag: </body>
#   id: ${ANALYTICS_ID}
#   template_file: ./templates/analytics.html

# Leave files alone when they already contain the template.
skip_if_present: true

watch:
  debounce: 300ms
`

// Init writes an example configuration file. An existing file is only
// replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot create configuration directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
