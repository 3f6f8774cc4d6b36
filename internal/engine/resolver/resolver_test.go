package resolver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/lessen/internal/core/ports/mocks"
	"go.trai.ch/lessen/internal/engine/materializer"
	"go.trai.ch/lessen/internal/engine/resolver"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	src     string
	out     string
	writer  *mocks.MockOutputWriter
	gen     *mocks.MockContentGenerator
	written map[string]string
	writes  map[string]int
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	src := filepath.ToSlash(filepath.Join(t.TempDir(), "stylesheets"))
	for name, content := range files {
		path := filepath.Join(filepath.FromSlash(src), filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	}

	return &fixture{
		src:     src,
		out:     domain.DefaultOutputRoot(src),
		writer:  mocks.NewMockOutputWriter(ctrl),
		gen:     mocks.NewMockContentGenerator(ctrl),
		written: map[string]string{},
		writes:  map[string]int{},
	}
}

// expectWrites records the last content and the number of writes per path.
func (f *fixture) expectWrites() {
	f.writer.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(path, content string) error {
		f.written[path] = content
		f.writes[path]++
		return nil
	}).AnyTimes()
}

// assertWrittenOnce checks that every written path was written exactly once.
func (f *fixture) assertWrittenOnce(t *testing.T) {
	t.Helper()
	for path, n := range f.writes {
		assert.Equal(t, 1, n, path)
	}
}

func (f *fixture) resolver(withGenerator, dev bool) *resolver.Resolver {
	var mat *materializer.Materializer
	if withGenerator {
		mat = materializer.New(f.gen, domain.DynamicExt, nil)
	}
	return resolver.New(resolver.Config{
		SourceRoot: f.src,
		OutputRoot: f.out,
		DynamicExt: domain.DynamicExt,
		Dev:        dev,
	}, mat, f.writer, nil, nil)
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	return zErr.Metadata()
}

func TestResolver_Resolve_NoImports(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": ".a { color: red; }\n"})
	f.expectWrites()

	out, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.NoError(t, err)
	assert.Equal(t, f.out+"/main.less", out)
	assert.Equal(t, map[string]string{out: ".a { color: red; }\n"}, f.written)
}

func TestResolver_Resolve_StaticImports(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.less":       "@import \"lib/mixins.less\";\n@import \"./base.less\";\n.a { .m; }\n",
		"lib/mixins.less": "@import \"../base.less\";\n.m { color: @c; }\n",
		"base.less":       "@c: red; // palette\n/* unused\n@import \"gone.less\"; */\n",
	})
	f.expectWrites()

	out, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.NoError(t, err)
	assert.Equal(t, f.out+"/main.less", out)

	assert.Equal(t, map[string]string{
		f.out + "/main.less":       "@import \"lib/mixins.less\";\n@import \"base.less\";\n.a { .m; }\n",
		f.out + "/lib/mixins.less": "@import \"../base.less\";\n.m { color: @c; }\n",
		f.out + "/base.less":       "@c: red; \n\n",
	}, f.written)
	assert.Equal(t, 1, f.writes[f.out+"/base.less"])
	f.assertWrittenOnce(t)
}

func TestResolver_Resolve_DynamicImports(t *testing.T) {
	tests := []struct {
		name       string
		blob       domain.DynamicBlob
		wantFile   string
		wantImport string
		wantNested string
	}{
		{
			name:       "keyed",
			blob:       domain.DynamicBlob{Key: "dark", Content: "@bg: black;"},
			wantFile:   "/colors-dark.play.less",
			wantImport: "colors-dark.play.less",
			wantNested: "../colors-dark.play.less",
		},
		{
			name:       "unkeyed",
			blob:       domain.DynamicBlob{Content: "@bg: white;"},
			wantFile:   "/colors.play.less",
			wantImport: "colors.play.less",
			wantNested: "../colors.play.less",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, map[string]string{
				"main.less":     "@import \"colors.play.less\";\n@import \"sub/part.less\";\n",
				"sub/part.less": "@import \"../colors.play.less\";\n",
			})
			f.expectWrites()
			f.gen.EXPECT().Generate(gomock.Any(), f.src+"/colors.play.less").Return(tt.blob, nil).Times(1)

			_, err := f.resolver(true, false).Resolve(context.Background(), f.src+"/main.less")
			require.NoError(t, err)

			assert.Equal(t, tt.blob.Content, f.written[f.out+tt.wantFile])
			assert.Equal(t,
				"@import \""+tt.wantImport+"\";\n@import \"sub/part.less\";\n",
				f.written[f.out+"/main.less"])
			assert.Equal(t, "@import \""+tt.wantNested+"\";\n", f.written[f.out+"/sub/part.less"])
			assert.Len(t, f.written, 3)
			assert.Equal(t, 1, f.writes[f.out+tt.wantFile])
			f.assertWrittenOnce(t)
		})
	}
}

func TestResolver_Resolve_Errors(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		generator bool
		top       string
		wantErr   error
		wantMeta  func(f *fixture) map[string]any
	}{
		{
			name:    "missing generator",
			files:   map[string]string{"main.less": "@import \"ok.less\";\n@import \"colors.play.less\";\n", "ok.less": ""},
			wantErr: domain.ErrMissingGenerator,
			wantMeta: func(f *fixture) map[string]any {
				return map[string]any{"import": f.src + "/colors.play.less", "file": f.src + "/main.less"}
			},
		},
		{
			name:    "missing import",
			files:   map[string]string{"main.less": "@import \"sub/missing.less\";\n"},
			wantErr: domain.ErrMissingImport,
			wantMeta: func(f *fixture) map[string]any {
				return map[string]any{"import": f.src + "/sub/missing.less", "file": f.src + "/main.less"}
			},
		},
		{
			name: "cycle",
			files: map[string]string{
				"main.less": "@import \"a.less\";\n",
				"a.less":    "@import \"b.less\";\n",
				"b.less":    "@import \"a.less\";\n",
			},
			wantErr: domain.ErrImportCycle,
			wantMeta: func(f *fixture) map[string]any {
				return map[string]any{"cycle": f.src + "/a.less -> " + f.src + "/b.less -> " + f.src + "/a.less"}
			},
		},
		{
			name:    "top file out of root",
			files:   map[string]string{"main.less": ""},
			top:     "/elsewhere/main.less",
			wantErr: domain.ErrOutOfRoot,
		},
		{
			name:    "missing top file",
			files:   map[string]string{},
			wantErr: domain.ErrReadFailed,
		},
		{
			name:      "generator failure",
			files:     map[string]string{"main.less": "@import \"colors.play.less\";\n"},
			generator: true,
			wantErr:   domain.ErrMissingTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.files)
			f.gen.EXPECT().Generate(gomock.Any(), gomock.Any()).
				Return(domain.DynamicBlob{}, domain.ErrMissingTemplate).AnyTimes()

			top := tt.top
			if top == "" {
				top = f.src + "/main.less"
			}

			// No writer expectations: a failed walk must not write.
			_, err := f.resolver(tt.generator, true).Resolve(context.Background(), top)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())

			if tt.wantMeta != nil {
				meta := metadata(t, err)
				for k, v := range tt.wantMeta(f) {
					assert.Equal(t, v, meta[k], k)
				}
			}
		})
	}
}

func TestResolver_Resolve_ImportOutOfRoot(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": "@import \"../outside.less\";\n"})
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(filepath.FromSlash(f.src)), "outside.less"), nil, domain.PrivateFilePerm))

	_, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutOfRoot.Error())
}

func TestResolver_Resolve_SiblingPrefixIsOutOfRoot(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": "@import \"../stylesheets-old/a.less\";\n"})
	sibling := filepath.FromSlash(f.src + "-old")
	require.NoError(t, os.MkdirAll(sibling, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(sibling, "a.less"), nil, domain.PrivateFilePerm))

	_, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutOfRoot.Error())
}

func TestResolver_Resolve_MalformedImport(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": ""})
	target := strings.Repeat("../", strings.Count(f.src, "/")+1) + "x.less"
	require.NoError(t, os.WriteFile(filepath.Join(filepath.FromSlash(f.src), "main.less"),
		[]byte("@import \""+target+"\";"), domain.PrivateFilePerm))

	_, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMalformedPath.Error())
	assert.Equal(t, target, metadata(t, err)["import"])
}

func TestResolver_Resolve_WriteFailure(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": ""})
	f.writer.EXPECT().Write(gomock.Any(), gomock.Any()).Return(domain.ErrOutputWriteFailed)

	_, err := f.resolver(false, true).Resolve(context.Background(), f.src+"/main.less")
	require.ErrorIs(t, err, domain.ErrOutputWriteFailed)
}

func TestResolver_Resolve_Traced(t *testing.T) {
	f := newFixture(t, map[string]string{"main.less": "@import \"nope.less\";"})
	ctrl := gomock.NewController(t)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)

	tracer.EXPECT().Start(gomock.Any(), "lessen.resolve").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span })
	span.EXPECT().SetAttribute("lessen.file", f.src+"/main.less")
	span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
		assert.True(t, strings.Contains(err.Error(), domain.ErrMissingImport.Error()))
	})
	span.EXPECT().End()

	r := resolver.New(resolver.Config{SourceRoot: f.src, OutputRoot: f.out}, nil, f.writer, nil, tracer)
	_, err := r.Resolve(context.Background(), f.src+"/main.less")
	require.Error(t, err)
}

func TestResolver_Needed(t *testing.T) {
	f := newFixture(t, nil)
	assert.False(t, f.resolver(false, false).Needed())
	assert.True(t, f.resolver(false, true).Needed())
	assert.True(t, f.resolver(true, false).Needed())
}

// themed reports the requested variant like the built-in theme generator.
type themed struct {
	*mocks.MockContentGenerator
	variant string
}

func (g themed) Variant(context.Context) string { return g.variant }

func TestResolver_Resolve_VariantKeysImporters(t *testing.T) {
	f := newFixture(t, map[string]string{
		"main.less":     "@import \"sub/part.less\";\n@import \"plain.less\";\n",
		"sub/part.less": "@import \"../colors.play.less\";\n",
		"plain.less":    ".p {}\n",
	})
	f.expectWrites()
	f.gen.EXPECT().Generate(gomock.Any(), f.src+"/colors.play.less").
		Return(domain.DynamicBlob{Key: "dark", Content: "@bg: black;"}, nil)

	res := resolver.New(resolver.Config{
		SourceRoot: f.src,
		OutputRoot: f.out,
		DynamicExt: domain.DynamicExt,
	}, materializer.New(themed{f.gen, "dark"}, domain.DynamicExt, nil), f.writer, nil, nil)

	out, err := res.Resolve(context.Background(), f.src+"/main.less")
	require.NoError(t, err)
	assert.Equal(t, f.out+"/main-dark.less", out)

	assert.Equal(t, map[string]string{
		f.out + "/main-dark.less":        "@import \"sub/part-dark.less\";\n@import \"plain.less\";\n",
		f.out + "/sub/part-dark.less":    "@import \"../colors-dark.play.less\";\n",
		f.out + "/colors-dark.play.less": "@bg: black;",
		f.out + "/plain.less":            ".p {}\n",
	}, f.written)
	f.assertWrittenOnce(t)
}
