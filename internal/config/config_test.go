package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/htmlpublish/internal/foundation/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "htmlpublish.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
base_dir: ./site
logging:
  level: DEBUG
  format: " JSON "
access_file:
  source: assets/.htaccess
stylesheet:
  source: /abs/coredoc.css
doctype:
  template: "<!DOCTYPE html>\n<html>"
script:
  template_file: templates/script.html
analytics:
  id: UA-1
  template: "<script>ANALYTICS-ID</script></body>"
skip_if_present: false
`)
	dir := filepath.Dir(path)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "site"), cfg.BaseDir)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, filepath.Join(dir, "assets", ".htaccess"), cfg.AccessFile.Source)
	assert.Equal(t, "/abs/coredoc.css", cfg.Stylesheet.Source)
	assert.Equal(t, DefaultEntryPoint, cfg.Stylesheet.EntryPoint)
	assert.Equal(t, DefaultStylesheetDir, cfg.Stylesheet.Subdir)
	assert.Equal(t, "<!DOCTYPE html>\n<html>", cfg.Doctype.Template)
	assert.Equal(t, filepath.Join(dir, "templates", "script.html"), cfg.Script.TemplateFile)
	assert.Nil(t, cfg.Favicon)
	assert.Equal(t, "UA-1", cfg.Analytics.ID)
	assert.False(t, cfg.ShouldSkipIfPresent())
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "base_dir: /srv/docs\n"))
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.BaseDir)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.True(t, cfg.ShouldSkipIfPresent())
	assert.Equal(t, "300ms", cfg.Watch.Debounce)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("DOCS_ROOT", "/srv/expanded")
	t.Setenv(EnvAnalyticsID, "G-OVERRIDE")

	cfg, err := Load(writeConfig(t, `
base_dir: ${DOCS_ROOT}
analytics:
  id: UA-FILE
  template: "ANALYTICS-ID</body>"
`))
	require.NoError(t, err)
	assert.Equal(t, "/srv/expanded", cfg.BaseDir)
	assert.Equal(t, "G-OVERRIDE", cfg.Analytics.ID)

	t.Setenv(EnvBaseDir, "/srv/override")
	cfg, err = Load(writeConfig(t, "base_dir: ./site\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/override", cfg.BaseDir)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HTMLPUBLISH_TEST_ROOT=/from/dotenv\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("HTMLPUBLISH_TEST_ROOT") })

	cfg, err := Load(writeConfig(t, "base_dir: ${HTMLPUBLISH_TEST_ROOT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.BaseDir)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing base dir", "logging: {level: info}\n"},
		{"unknown key", "base_dir: ./site\nbasedir: typo\n"},
		{"malformed yaml", "base_dir: [\n"},
		{"bad level", "base_dir: ./site\nlogging: {level: verbose}\n"},
		{"template and file", "base_dir: ./site\ndoctype: {template: x, template_file: y}\n"},
		{"empty template", "base_dir: ./site\nscript: {}\n"},
		{"analytics without id", "base_dir: ./site\nanalytics: {template: x}\n"},
		{"stylesheet without source", "base_dir: ./site\nstylesheet: {entry_point: index.html}\n"},
		{"escaping subdir", "base_dir: ./site\nstylesheet: {source: a.css, subdir: ../css}\n"},
		{"bad debounce", "base_dir: ./site\nwatch: {debounce: soon}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig), "got %v", err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestTemplateContent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "favicon.html")
	require.NoError(t, os.WriteFile(file, []byte("<link rel=\"icon\"></head>"), 0o644))

	got, err := (&TemplateConfig{TemplateFile: file}).Content()
	require.NoError(t, err)
	assert.Equal(t, "<link rel=\"icon\"></head>", got)

	got, err = (&TemplateConfig{Template: "inline"}).Content()
	require.NoError(t, err)
	assert.Equal(t, "inline", got)

	_, err = (&TemplateConfig{TemplateFile: filepath.Join(dir, "missing.html")}).Content()
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestWatchDebounce(t *testing.T) {
	cfg := &Config{Watch: WatchConfig{Debounce: "2s"}}
	assert.Equal(t, 2*time.Second, cfg.WatchDebounce())
	cfg.Watch.Debounce = ""
	assert.Equal(t, DefaultWatchDebounce, cfg.WatchDebounce())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "htmlpublish.yaml")

	require.NoError(t, Init(path, false))

	err := Init(path, false)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "site"), cfg.BaseDir)
	assert.Equal(t, "<!DOCTYPE html>\n<html>", cfg.Doctype.Template)
	assert.Contains(t, cfg.Script.Template, "</head>")
	assert.Nil(t, cfg.Analytics)
	assert.True(t, cfg.ShouldSkipIfPresent())
}

func TestNormalizeLogging(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warn "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("chatty"))
	assert.Equal(t, LogFormatJSON, NormalizeLogFormat("JSON"))
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}

func TestLogLevelSlog(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{LogLevel("chatty"), slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.Slog())
		})
	}
}

func TestLogFormatHandler(t *testing.T) {
	var buf bytes.Buffer
	slog.New(LogFormatJSON.Handler(&buf, nil)).Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "json output: %s", buf.String())

	buf.Reset()
	slog.New(LogFormatText.Handler(&buf, nil)).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}
