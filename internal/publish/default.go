package publish

// Package-level operations run against the host filesystem with the default
// logger and no metrics.

func AddAccessFile(baseDir, accessFile string) ([]string, error) {
	return New(nil).AddAccessFile(baseDir, accessFile)
}

func AddStylesheet(baseDir, cssFile, entryPoint string) ([]string, error) {
	return New(nil).AddStylesheet(baseDir, cssFile, entryPoint)
}

func UpdateHTML(baseDir, tag, replacement string) ([]string, error) {
	return New(nil).UpdateHTML(baseDir, tag, replacement)
}

func AddDoctype(baseDir, template string) ([]string, error) {
	return New(nil).AddDoctype(baseDir, template)
}

func AddScript(baseDir, template string) ([]string, error) {
	return New(nil).AddScript(baseDir, template)
}

func AddFavicon(baseDir, template string) ([]string, error) {
	return New(nil).AddFavicon(baseDir, template)
}

func AddAnalytics(baseDir, id, template string) ([]string, error) {
	return New(nil).AddAnalytics(baseDir, id, template)
}
