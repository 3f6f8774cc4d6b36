// Package app implements the application layer for lessen.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/lessen/internal/adapters/fs"
	"go.trai.ch/lessen/internal/adapters/request"
	"go.trai.ch/lessen/internal/adapters/watcher"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/engine/compcache"
	"go.trai.ch/lessen/internal/engine/materializer"
	"go.trai.ch/lessen/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	cfg          *domain.Config
	resolver     *resolver.Resolver
	materializer *materializer.Materializer
	cache        *compcache.Cache
	writer       ports.OutputWriter
	store        ports.Store
	watcher      ports.Watcher
	walker       *fs.Walker
	logger       ports.Logger

	debounce  time.Duration
	startOnce sync.Once
	startErr  error
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	res *resolver.Resolver,
	mat *materializer.Materializer,
	cache *compcache.Cache,
	writer ports.OutputWriter,
	store ports.Store,
	watch ports.Watcher,
	walker *fs.Walker,
	log ports.Logger,
) *App {
	return &App{
		cfg:          cfg,
		resolver:     res,
		materializer: mat,
		cache:        cache,
		writer:       writer,
		store:        store,
		watcher:      watch,
		walker:       walker,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounce sets the debounce window used by Watch.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Config returns the loaded configuration.
func (a *App) Config() *domain.Config {
	return a.cfg
}

// start clears the output tree once per process when a generator is
// registered, so stale generated files never survive a restart.
func (a *App) start() error {
	a.startOnce.Do(func() {
		if !a.materializer.Enabled() {
			return
		}
		a.logger.Debug("clearing output root " + a.cfg.OutputRoot)
		a.startErr = a.writer.Clear()
	})
	return a.startErr
}

// Path converts file to an absolute slash path.
func (a *App) Path(file string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(file))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "path", file)
	}
	return filepath.ToSlash(abs), nil
}

// withRequest parses query and attaches it to ctx.
func withRequest(ctx context.Context, query string) (context.Context, error) {
	rc, err := request.Parse(query)
	if err != nil {
		return nil, err
	}
	return request.WithContext(ctx, rc), nil
}

// CompileOptions configures a single compilation.
type CompileOptions struct {
	// Query is the raw query string of the triggering request, e.g. "theme=dark".
	Query string
}

// Result is a compiled stylesheet with its caching metadata.
type Result struct {
	File         string
	CSS          string
	LastModified time.Time
	// CacheControl is the max-age in seconds, or zero in dev mode.
	CacheControl int
}

// Headers returns the HTTP response headers for r.
func (r Result) Headers() [][2]string {
	headers := [][2]string{{"Content-Type", "text/css"}}
	if !r.LastModified.IsZero() {
		headers = append(headers, [2]string{"Last-Modified", r.LastModified.UTC().Format(http.TimeFormat)})
	}
	if r.CacheControl > 0 {
		headers = append(headers, [2]string{"Cache-Control", "max-age=" + strconv.Itoa(r.CacheControl)})
	}
	return headers
}

// Compile resolves and compiles file, serving the CSS from the cache when
// nothing it depends on has changed.
func (a *App) Compile(ctx context.Context, file string, opts CompileOptions) (Result, error) {
	if err := a.start(); err != nil {
		return Result{}, err
	}
	path, err := a.Path(file)
	if err != nil {
		return Result{}, err
	}
	ctx, err = withRequest(ctx, opts.Query)
	if err != nil {
		return Result{}, err
	}

	var prepare compcache.PrepareFunc
	if a.resolver.Needed() {
		prepare = func(ctx context.Context) (string, error) {
			return a.resolver.Resolve(ctx, path)
		}
	}

	css, err := a.cache.GetWith(ctx, path, prepare)
	if err != nil {
		return Result{}, err
	}
	modified, err := a.cache.LastModified(ctx, path)
	if err != nil {
		return Result{}, err
	}

	result := Result{File: path, CSS: css, LastModified: modified}
	if !a.cfg.Dev {
		result.CacheControl = a.cfg.CacheControl
	}
	return result, nil
}

// Resolve rewrites file into the output tree and returns the rewritten path.
func (a *App) Resolve(ctx context.Context, file string, opts CompileOptions) (string, error) {
	if err := a.start(); err != nil {
		return "", err
	}
	path, err := a.Path(file)
	if err != nil {
		return "", err
	}
	ctx, err = withRequest(ctx, opts.Query)
	if err != nil {
		return "", err
	}
	return a.resolver.Resolve(ctx, path)
}

// LastModified returns the newest modification time of file and its imports.
func (a *App) LastModified(ctx context.Context, file string) (time.Time, error) {
	path, err := a.Path(file)
	if err != nil {
		return time.Time{}, err
	}
	return a.cache.LastModified(ctx, path)
}

// Imports returns the transitive imports of file.
func (a *App) Imports(ctx context.Context, file string) ([]string, error) {
	path, err := a.Path(file)
	if err != nil {
		return nil, err
	}
	return a.cache.Imports(ctx, path)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Output bool
	Cache  bool
}

// Clean removes the output tree and the compilation cache.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	if options.Output {
		a.logger.Info("removing output root " + a.cfg.OutputRoot)
		if err := a.writer.Clear(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if options.Cache && a.store != nil {
		a.logger.Info("purging compilation cache")
		if err := a.store.Purge(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

// BuildOptions configures Build and Watch.
type BuildOptions struct {
	CompileOptions
	// OutDir receives <relative source path>.css files. It defaults to the
	// output root.
	OutDir string
	// Jobs bounds the number of concurrent compilations. Zero means one per file.
	Jobs int
}

// BuildReport summarizes a Build run.
type BuildReport struct {
	Compiled  int
	Written   int
	Unchanged int
}

// Stylesheets lists the compilable stylesheets below the source root. The
// output root and dynamic imports are excluded.
func (a *App) Stylesheets() []string {
	var files []string
	for file := range a.walker.WalkFiles(a.cfg.SourceRoot, domain.LessExt, []string{a.cfg.OutputRoot}) {
		if domain.IsDynamic(file, a.cfg.DynamicExt) {
			continue
		}
		files = append(files, file)
	}
	return files
}

// Build compiles files, or every stylesheet below the source root when files
// is empty, and writes the CSS below opts.OutDir.
func (a *App) Build(ctx context.Context, files []string, opts BuildOptions) (BuildReport, error) {
	if len(files) == 0 {
		files = a.Stylesheets()
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = a.cfg.OutputRoot
	}
	outDir, err := a.Path(outDir)
	if err != nil {
		return BuildReport{}, err
	}

	var (
		mu     sync.Mutex
		report BuildReport
	)
	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for _, file := range files {
		g.Go(func() error {
			written, err := a.buildOne(ctx, file, outDir, opts.CompileOptions)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			report.Compiled++
			if written {
				report.Written++
			} else {
				report.Unchanged++
			}
			return nil
		})
	}
	err = g.Wait()
	return report, err
}

func (a *App) buildOne(ctx context.Context, file, outDir string, opts CompileOptions) (bool, error) {
	result, err := a.Compile(ctx, file, opts)
	if err != nil {
		return false, zerr.With(err, "file", file)
	}

	target, err := cssPath(result.File, a.cfg.SourceRoot, outDir)
	if err != nil {
		return false, err
	}
	written, err := fs.WriteIfChanged(target, []byte(result.CSS))
	if err != nil {
		return false, err
	}
	if written {
		a.logger.Info("wrote " + target)
	} else {
		a.logger.Debug("unchanged " + target)
	}
	return written, nil
}

// cssPath maps a stylesheet below sourceRoot to its .css file below outDir.
func cssPath(file, sourceRoot, outDir string) (string, error) {
	rebased, err := domain.Rebase(file, sourceRoot, outDir)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(rebased, domain.LessExt) + ".css", nil
}

// Watch builds files once and again whenever a stylesheet below the source
// root changes. It returns when ctx is canceled.
func (a *App) Watch(ctx context.Context, files []string, opts BuildOptions) error {
	if _, err := a.Build(ctx, files, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, a.cfg.SourceRoot, a.cfg.OutputRoot); err != nil {
		return err
	}
	a.logger.Info("watching " + a.cfg.SourceRoot)

	if a.watchesThemes() {
		if err := a.watcher.Add(a.cfg.ThemesDir); err != nil {
			_ = a.watcher.Stop()
			return err
		}
		a.logger.Info("watching " + a.cfg.ThemesDir)
	}

	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case rebuild <- paths:
		case <-ctx.Done():
		}
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return a.watcher.Stop()
	})
	g.Go(func() error {
		for event := range a.watcher.Events() {
			if watched(event.Path) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case changed := <-rebuild:
				a.logger.Info("changed " + strings.Join(changed, ", "))
				if _, err := a.Build(ctx, files, opts); err != nil {
					a.logger.Error(err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// watchesThemes reports whether the themes directory needs a watch of its own.
func (a *App) watchesThemes() bool {
	if !a.materializer.Enabled() || a.cfg.ThemesDir == "" || domain.IsWithin(a.cfg.ThemesDir, a.cfg.SourceRoot) {
		return false
	}
	info, err := os.Stat(filepath.FromSlash(a.cfg.ThemesDir))
	return err == nil && info.IsDir()
}

// watched reports whether a change to path can affect compiled output.
func watched(path string) bool {
	return strings.HasSuffix(path, domain.LessExt) || strings.HasSuffix(path, domain.ThemeTemplateExt)
}
