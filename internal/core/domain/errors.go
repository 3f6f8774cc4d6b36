package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedPath is returned when a path ascends above its root with "..".
	ErrMalformedPath = zerr.New("bad path in import statement")

	// ErrOutOfRoot is returned when a stylesheet lies outside the configured source root.
	ErrOutOfRoot = zerr.New("all imports must be inside the stylesheet root")

	// ErrMissingImport is returned when a static import target does not exist.
	ErrMissingImport = zerr.New("could not find import")

	// ErrMissingGenerator is returned when a dynamic import is found but no content generator is registered.
	ErrMissingGenerator = zerr.New("found dynamic import but no content generator is registered")

	// ErrConfiguration is returned when more than one content generator is registered.
	ErrConfiguration = zerr.New("only one content generator may be registered")

	// ErrInvalidBlobKey is returned when a generator keys its blob with a path separator or "..".
	ErrInvalidBlobKey = zerr.New("invalid dynamic blob key")

	// ErrImportCycle is returned when a stylesheet imports a file that is still being resolved.
	ErrImportCycle = zerr.New("import cycle detected")

	// ErrMissingTemplate is returned when the theme template for a dynamic import does not exist.
	ErrMissingTemplate = zerr.New("could not find template for dynamic import")

	// ErrTemplateRenderFailed is returned when a template cannot be parsed or executed.
	ErrTemplateRenderFailed = zerr.New("failed to render template")

	// ErrCompileFailed is returned when the external compiler fails without a diagnostic.
	ErrCompileFailed = zerr.New("stylesheet compilation failed")

	// ErrReadFailed is returned when a stylesheet cannot be read.
	ErrReadFailed = zerr.New("failed to read stylesheet")

	// ErrOutputWriteFailed is returned when a file in the output tree cannot be written.
	ErrOutputWriteFailed = zerr.New("failed to write output file")

	// ErrUnsafeClear is returned when the output root fails the sanity checks before deletion.
	ErrUnsafeClear = zerr.New("refusing to clear output root")

	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create store directory")

	// ErrStoreReadFailed is returned when a store record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read store record")

	// ErrStoreUnmarshalFailed is returned when a store record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal store record")

	// ErrStoreMarshalFailed is returned when a store record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal store record")

	// ErrStoreWriteFailed is returned when a store record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write store record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrFailedToGetRoot is returned when an absolute path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of root")

	// ErrInvalidQuery is returned when a raw query string cannot be parsed.
	ErrInvalidQuery = zerr.New("invalid query string")

	// ErrWatchFailed is returned when the source tree cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch source tree")
)
