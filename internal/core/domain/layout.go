package domain

import "path/filepath"

const (
	// LessenDirName is the name of the internal workspace directory.
	LessenDirName = ".lessen"

	// StoreDirName is the name of the disk store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "lessen.yaml"

	// LessExt is the extension of stylesheet sources.
	LessExt = ".less"

	// DynamicExt is the default marker extension for dynamic imports.
	DynamicExt = ".play.less"

	// DefaultSourceRoot is the stylesheet root relative to the project directory.
	DefaultSourceRoot = "public/stylesheets"

	// OutputDirName is the output directory created below the source root.
	OutputDirName = "play-less"

	// DefaultThemesDir is the directory holding theme templates.
	DefaultThemesDir = "app/views/themes"

	// ThemeTemplateExt is the extension of theme templates.
	ThemeTemplateExt = ".less.tmpl"

	// ThemeToken prefixes the first line of generated theme files.
	ThemeToken = "// Theme: "

	// ThemeParam is the request parameter selecting a theme.
	ThemeParam = "theme"

	// DefaultCacheControl is the max-age in seconds advertised in production mode.
	DefaultCacheControl = 3600

	// MinClearPathLength guards against clearing short paths such as "/" or "/tmp".
	MinClearPathLength = 10

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStorePath returns the default path for the disk store.
// It joins .lessen and store.
func DefaultStorePath() string {
	return filepath.Join(LessenDirName, StoreDirName)
}

// DefaultOutputRoot returns the output root for a source root.
func DefaultOutputRoot(sourceRoot string) string {
	return sourceRoot + "/" + OutputDirName
}
