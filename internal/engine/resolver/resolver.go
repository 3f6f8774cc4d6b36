// Package resolver rewrites a stylesheet and its static and dynamic imports
// into the output tree.
package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/engine/materializer"
	"go.trai.ch/zerr"
)

// Config holds the resolver settings. Roots are absolute slash paths.
type Config struct {
	SourceRoot string
	OutputRoot string
	DynamicExt string
	Dev        bool
}

// Resolver walks @import graphs starting at a top file.
type Resolver struct {
	cfg          Config
	materializer *materializer.Materializer
	writer       ports.OutputWriter
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a Resolver. materializer may be nil when no generator exists.
func New(
	cfg Config,
	mat *materializer.Materializer,
	writer ports.OutputWriter,
	logger ports.Logger,
	tracer ports.Tracer,
) *Resolver {
	cfg.SourceRoot = strings.TrimSuffix(cfg.SourceRoot, "/")
	cfg.OutputRoot = strings.TrimSuffix(cfg.OutputRoot, "/")
	if cfg.DynamicExt == "" {
		cfg.DynamicExt = domain.DynamicExt
	}
	return &Resolver{
		cfg:          cfg,
		materializer: mat,
		writer:       writer,
		logger:       logger,
		tracer:       tracer,
	}
}

// Needed reports whether stylesheets must be rewritten before compiling.
// Without a generator and outside dev mode sources compile in place.
func (r *Resolver) Needed() bool {
	return r.materializer.Enabled() || r.cfg.Dev
}

// Resolve rewrites topFile and everything it imports below the output root
// and returns the output path of topFile. Nothing is written unless the
// whole graph resolves.
func (r *Resolver) Resolve(ctx context.Context, topFile string) (string, error) {
	if r.tracer != nil {
		var span ports.Span
		ctx, span = r.tracer.Start(ctx, "lessen.resolve")
		defer span.End()
		span.SetAttribute("lessen.file", topFile)

		out, err := r.resolve(ctx, topFile)
		if err != nil {
			span.RecordError(err)
		}
		return out, err
	}
	return r.resolve(ctx, topFile)
}

func (r *Resolver) resolve(ctx context.Context, topFile string) (string, error) {
	file, err := domain.Normalize(topFile)
	if err != nil {
		return "", err
	}

	graph := domain.NewImportGraph()
	out, _, err := r.resolveOne(ctx, graph, r.materializer.Variant(ctx), file)
	if err != nil {
		return "", err
	}

	for _, w := range graph.Writes() {
		if err := r.writer.Write(w.Path, w.Content); err != nil {
			return "", err
		}
	}

	if r.logger != nil {
		r.logger.Debug("resolved " + file + " (" +
			strconv.Itoa(graph.StaticCount()) + " static, " +
			strconv.Itoa(graph.DynamicCount()) + " dynamic)")
	}
	return out, nil
}

// resolveOne rewrites file and reports whether its output depends on the
// variant. Such files are written as <base>-<variant>.less next to the
// unkeyed path, so variants never overwrite each other's importers.
func (r *Resolver) resolveOne(
	ctx context.Context,
	graph *domain.ImportGraph,
	variant, file string,
) (string, bool, error) {
	output, err := domain.Rebase(file, r.cfg.SourceRoot, r.cfg.OutputRoot)
	if err != nil {
		return "", false, err
	}
	if out, ok := graph.Resolved(file); ok {
		return out, out != output, nil
	}
	if err := graph.Enter(file); err != nil {
		return "", false, err
	}

	//nolint:gosec // file is normalized and checked to lie below the source root
	raw, err := os.ReadFile(filepath.FromSlash(file))
	if err != nil {
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "file", file)
	}

	text := domain.StripComments(string(raw))
	dir := domain.Dir(file)

	varies := false
	for pos := 0; pos < len(text); {
		loc := domain.ImportPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[2], pos+loc[3]

		targetOut, targetVaries, err := r.resolveImport(ctx, graph, variant, file, dir, text[start:end])
		if err != nil {
			return "", false, err
		}
		varies = varies || targetVaries

		// A keyed output stays in the same directory, so the relative path
		// computed from the unkeyed one holds.
		rel := domain.RelativePath(output, targetOut)
		text = text[:start] + rel + text[end:]
		pos = start + len(rel)
	}

	if varies {
		output = domain.PathWithKey(output, domain.LessExt, variant)
	}
	graph.Stage(output, text)
	graph.Leave(file, output)
	return output, varies, nil
}

// resolveImport returns the output path of one import target of file.
func (r *Resolver) resolveImport(
	ctx context.Context,
	graph *domain.ImportGraph,
	variant, file, dir, target string,
) (string, bool, error) {
	path, err := domain.Normalize(dir + "/" + target)
	if err != nil {
		return "", false, zerr.With(zerr.With(err, "import", target), "file", file)
	}

	if domain.IsDynamic(path, r.cfg.DynamicExt) {
		out, err := r.resolveDynamic(ctx, graph, file, path)
		return out, variant != "", err
	}

	if _, err := os.Stat(filepath.FromSlash(path)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, zerr.With(zerr.With(domain.ErrMissingImport, "import", path), "file", file)
		}
		return "", false, zerr.With(zerr.Wrap(err, domain.ErrReadFailed.Error()), "file", path)
	}

	return r.resolveOne(ctx, graph, variant, path)
}

func (r *Resolver) resolveDynamic(ctx context.Context, graph *domain.ImportGraph, file, path string) (string, error) {
	if !r.materializer.Enabled() {
		return "", zerr.With(zerr.With(domain.ErrMissingGenerator, "import", path), "file", file)
	}

	unkeyed, err := domain.Rebase(path, r.cfg.SourceRoot, r.cfg.OutputRoot)
	if err != nil {
		return "", zerr.With(err, "file", file)
	}
	if keyed, ok := graph.Dynamic(unkeyed); ok {
		return keyed, nil
	}

	keyed, err := r.materializer.Materialize(ctx, path, unkeyed, stager{graph})
	if err != nil {
		return "", zerr.With(err, "file", file)
	}
	graph.MarkDynamic(unkeyed, keyed)
	return keyed, nil
}

// stager collects generated content in the graph until the walk succeeds.
type stager struct {
	graph *domain.ImportGraph
}

func (s stager) Write(path, content string) error {
	s.graph.Stage(path, content)
	return nil
}
