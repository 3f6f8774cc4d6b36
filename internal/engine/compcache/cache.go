// Package compcache caches compiled stylesheets keyed by the newest
// modification time of the file and everything it imports.
package compcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	goccy "github.com/goccy/go-json"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Cache compiles stylesheets through a ports.Compiler and memoizes the
// result in a ports.Store.
type Cache struct {
	store    ports.Store
	compiler ports.Compiler
	logger   ports.Logger
	tracer   ports.Tracer
	dynamics Dynamics
	ttl      time.Duration
	group    singleflight.Group
	noStore  sync.Once
}

// Dynamics describes the generated imports a stylesheet may depend on.
type Dynamics interface {
	// Variant returns the generated variant requested in ctx, or "".
	Variant(ctx context.Context) string
	// Sources returns the files that feed the dynamic import path.
	Sources(path string) []string
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the time to live of entries written to the store. Zero keeps
// entries until the backend evicts them.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithDynamics keys compiled entries by the requested variant and adds the
// sources of dynamic imports to the last-modified time.
func WithDynamics(d Dynamics) Option {
	return func(c *Cache) {
		c.dynamics = d
	}
}

// New creates a Cache. store and tracer may be nil.
func New(store ports.Store, compiler ports.Compiler, logger ports.Logger, tracer ports.Tracer, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		compiler: compiler,
		logger:   logger,
		tracer:   tracer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PrepareFunc returns the path to compile on a cache miss.
type PrepareFunc func(ctx context.Context) (string, error)

// Get returns the CSS for file, compiling it on a miss.
func (c *Cache) Get(ctx context.Context, file string) (string, error) {
	return c.GetWith(ctx, file, nil)
}

// GetWith keys the entry on file. On a miss it compiles the path returned by
// prepare, or file itself when prepare is nil. Compiler diagnostics are
// rendered into an error stylesheet and cached like a success.
func (c *Cache) GetWith(ctx context.Context, file string, prepare PrepareFunc) (string, error) {
	var span ports.Span
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, "lessen.compile")
		defer span.End()
		span.SetAttribute("lessen.file", file)
	}

	css, err := c.get(ctx, file, prepare, span)
	if err != nil && span != nil {
		span.RecordError(err)
	}
	return css, err
}

func (c *Cache) get(ctx context.Context, file string, prepare PrepareFunc, span ports.Span) (string, error) {
	modified, err := c.LastModified(ctx, file)
	if err != nil {
		return "", err
	}
	variant := c.variant(ctx)
	key := domain.CacheKey{
		Namespace: domain.NamespaceCompiled,
		Path:      file,
		Variant:   variant,
		Modified:  modified,
	}.String()

	if css, ok := c.lookup(key); ok {
		if span != nil {
			span.SetAttribute("lessen.cached", true)
		}
		return string(css), nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the entry while this one waited.
		if css, ok := c.lookup(key); ok {
			return string(css), nil
		}

		target := file
		if prepare != nil {
			prepared, prepareErr := prepare(ctx)
			if prepareErr != nil {
				return "", prepareErr
			}
			target = prepared
		}

		css, err := c.compiler.Compile(ctx, target)
		if err != nil {
			var diag *domain.CompilerError
			if !errors.As(err, &diag) {
				return "", err
			}
			if c.logger != nil {
				c.logger.Warn("compile error in " + file + ": " + diag.Error())
			}
			css = domain.ErrorStylesheet(diag, domain.Base(file))
		}

		c.save(key, []byte(css))
		return css, nil
	})
	if err != nil {
		return "", err
	}
	if span != nil {
		span.SetAttribute("lessen.cached", false)
	}
	return v.(string), nil
}

func (c *Cache) variant(ctx context.Context) string {
	if c.dynamics == nil {
		return ""
	}
	return c.dynamics.Variant(ctx)
}

// LastModified returns the newest modification time of file and every file
// it imports transitively, including the sources of dynamic imports. Missing
// files contribute the zero time.
func (c *Cache) LastModified(ctx context.Context, file string) (time.Time, error) {
	var latest time.Time
	observe := func(modified time.Time) {
		if modified.After(latest) {
			latest = modified
		}
	}
	err := c.walk(ctx, file, func(path string, modified time.Time) {
		observe(modified)
		if c.dynamics == nil {
			return
		}
		for _, source := range c.dynamics.Sources(path) {
			sourceModified, _ := modTime(source)
			observe(sourceModified)
		}
	})
	return latest, err
}

// Imports returns every file imported by file, directly or transitively, in
// depth-first order. Targets that do not exist are included.
func (c *Cache) Imports(ctx context.Context, file string) ([]string, error) {
	var imports []string
	err := c.walk(ctx, file, func(path string, _ time.Time) {
		if path != file {
			imports = append(imports, path)
		}
	})
	return imports, err
}

// walk visits file and its transitive imports once each.
func (c *Cache) walk(ctx context.Context, file string, visit func(path string, modified time.Time)) error {
	visited := make(map[string]struct{})
	var rec func(path string) error
	rec = func(path string) error {
		if _, seen := visited[path]; seen {
			return nil
		}
		visited[path] = struct{}{}
		if err := ctx.Err(); err != nil {
			return err
		}

		modified, exists := modTime(path)
		visit(path, modified)
		if !exists {
			return nil
		}

		for _, imported := range c.directImports(path, modified) {
			if err := rec(imported); err != nil {
				return err
			}
		}
		return nil
	}
	return rec(file)
}

// directImports returns the resolved import targets of path, memoized per
// modification time.
func (c *Cache) directImports(path string, modified time.Time) []string {
	key := domain.CacheKey{Namespace: domain.NamespaceImports, Path: path, Modified: modified}.String()

	if data, ok := c.lookup(key); ok {
		var imports []string
		err := goccy.Unmarshal(data, &imports)
		if err == nil {
			return imports
		}
		c.logStoreError(zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "key", key))
	}

	//nolint:gosec // path comes from a stylesheet below the source root
	raw, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		if c.logger != nil {
			c.logger.Error(zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "file", path))
		}
		return nil
	}

	dir := domain.Dir(path)
	targets := domain.ImportTargets(domain.StripComments(string(raw)))
	imports := make([]string, 0, len(targets))
	for _, target := range targets {
		resolved, err := domain.Normalize(dir + "/" + target)
		if err != nil {
			if c.logger != nil {
				c.logger.Debug("skipping import " + target + " in " + path + ": " + err.Error())
			}
			continue
		}
		if _, ok := modTime(resolved); !ok {
			if _, ok := modTime(resolved + domain.LessExt); ok {
				resolved += domain.LessExt
			}
		}
		imports = append(imports, resolved)
	}

	if data, err := goccy.Marshal(imports); err == nil {
		c.save(key, data)
	}
	return imports
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	data, ok, err := c.store.Get(key)
	if err != nil {
		c.logStoreError(err)
		return nil, false
	}
	return data, ok
}

func (c *Cache) save(key string, value []byte) {
	if c.store == nil {
		c.noStore.Do(func() {
			if c.logger != nil {
				c.logger.Warn("cache not initialized, compiling without cache")
			}
		})
		return
	}
	if err := c.store.Set(key, value, c.ttl); err != nil {
		c.logStoreError(err)
	}
}

func (c *Cache) logStoreError(err error) {
	if c.logger != nil {
		c.logger.Error(err)
	}
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(filepath.FromSlash(path))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
