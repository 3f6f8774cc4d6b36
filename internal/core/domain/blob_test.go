package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lessen/internal/core/domain"
)

func TestPathWithKey(t *testing.T) {
	tests := []struct {
		name string
		path string
		key  string
		want string
	}{
		{name: "with key", path: "/out/colors.play.less", key: "dark", want: "/out/colors-dark.play.less"},
		{name: "empty key", path: "/out/colors.play.less", key: "", want: "/out/colors.play.less"},
		{name: "no marker", path: "/out/colors.less", key: "dark", want: "/out/colors.less"},
		{name: "last marker wins", path: "/out/a.play.less/b.play.less", key: "k", want: "/out/a.play.less/b-k.play.less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.PathWithKey(tt.path, domain.DynamicExt, tt.key))
		})
	}
}

func TestIsDynamic(t *testing.T) {
	assert.True(t, domain.IsDynamic("/a/colors.play.less", domain.DynamicExt))
	assert.False(t, domain.IsDynamic("/a/colors.less", domain.DynamicExt))
	assert.False(t, domain.IsDynamic("/a/colors.play.less", ""))
}

func TestCacheKey_String(t *testing.T) {
	mod := time.UnixMilli(1700000000123)

	compiled := domain.CacheKey{Namespace: domain.NamespaceCompiled, Path: "/css/main.less", Modified: mod}
	imports := domain.CacheKey{Namespace: domain.NamespaceImports, Path: "/css/main.less", Modified: mod}

	assert.Equal(t, "less_/css/main.less@1700000000123", compiled.String())
	assert.Equal(t, "less_imports_/css/main.less@1700000000123", imports.String())

	later := compiled
	later.Modified = mod.Add(time.Second)
	assert.NotEqual(t, compiled.String(), later.String())

	dark := compiled
	dark.Variant = "dark"
	assert.Equal(t, "less_/css/main.less#dark@1700000000123", dark.String())
}
