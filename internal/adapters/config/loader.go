// Package config provides the configuration loader for lessen.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DevEnvVar overrides the dev setting of the config file when set.
const DevEnvVar = "LESSEN_DEV"

// DefaultCompilerCommand is the external compiler invocation.
var DefaultCompilerCommand = []string{"lessc", "--no-color"}

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads lessen.yaml from cwd or the nearest parent directory.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	var file File
	projectRoot := cwd

	configPath, found := findConfiguration(cwd)
	if found {
		if err := readAndUnmarshalYAML(configPath, &file); err != nil {
			return nil, zerr.With(err, "path", configPath)
		}
		projectRoot = filepath.Dir(configPath)
	} else {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
	}

	cfg, err := resolve(projectRoot, &file)
	if err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv(DevEnvVar); ok {
		dev, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return nil, zerr.With(zerr.Wrap(parseErr, domain.ErrInvalidConfig.Error()), "env", DevEnvVar)
		}
		cfg.Dev = dev
	}

	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

func resolve(projectRoot string, file *File) (*domain.Config, error) {
	root, err := absSlash(projectRoot, ".")
	if err != nil {
		return nil, err
	}

	source, err := absSlash(projectRoot, orDefault(file.SourceRoot, domain.DefaultSourceRoot))
	if err != nil {
		return nil, err
	}

	output := domain.DefaultOutputRoot(source)
	if file.OutputRoot != "" {
		if output, err = absSlash(projectRoot, file.OutputRoot); err != nil {
			return nil, err
		}
	}

	themes, err := absSlash(projectRoot, orDefault(file.ThemesDir, domain.DefaultThemesDir))
	if err != nil {
		return nil, err
	}

	cfg := &domain.Config{
		ProjectRoot:     root,
		SourceRoot:      source,
		OutputRoot:      output,
		ThemesDir:       themes,
		DynamicExt:      orDefault(file.DynamicExtension, domain.DynamicExt),
		Dev:             file.Dev,
		CacheBackend:    domain.CacheBackend(orDefault(file.Cache.Backend, string(domain.CacheBackendMemory))),
		CacheTTL:        file.Cache.TTL,
		CacheMaxKeys:    file.Cache.MaxKeys,
		CacheControl:    domain.DefaultCacheControl,
		CompilerCommand: DefaultCompilerCommand,
	}
	if file.CacheControl != nil {
		cfg.CacheControl = *file.CacheControl
	}
	if len(file.Compiler.Command) > 0 {
		cfg.CompilerCommand = file.Compiler.Command
	}

	return cfg, validate(cfg)
}

func validate(cfg *domain.Config) error {
	switch cfg.CacheBackend {
	case domain.CacheBackendMemory, domain.CacheBackendDisk:
	default:
		return zerr.With(domain.ErrInvalidConfig, "cache.backend", string(cfg.CacheBackend))
	}

	if cfg.CacheControl < 0 {
		return zerr.With(domain.ErrInvalidConfig, "cache_control", cfg.CacheControl)
	}
	if cfg.CacheTTL < 0 {
		return zerr.With(domain.ErrInvalidConfig, "cache.ttl", cfg.CacheTTL.String())
	}
	if cfg.CacheMaxKeys < 0 {
		return zerr.With(domain.ErrInvalidConfig, "cache.max_keys", cfg.CacheMaxKeys)
	}
	if !strings.HasPrefix(cfg.DynamicExt, ".") {
		return zerr.With(domain.ErrInvalidConfig, "dynamic_extension", cfg.DynamicExt)
	}
	if cfg.OutputRoot == cfg.SourceRoot {
		return zerr.With(domain.ErrInvalidConfig, "output_root", cfg.OutputRoot)
	}

	return nil
}

// absSlash resolves p against base and returns an absolute slash path.
func absSlash(base, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "path", p)
	}
	return filepath.ToSlash(abs), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from cwd
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
