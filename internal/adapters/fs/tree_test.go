package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/adapters/fs"
	"go.trai.ch/lessen/internal/core/domain"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.FromSlash(path))
	require.NoError(t, err)
	return string(data)
}

func TestOutputTree_Write(t *testing.T) {
	source := filepath.ToSlash(t.TempDir())
	out := source + "/play-less"

	t.Run("creates parents", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, false)
		require.NoError(t, tree.Write(out+"/sub/dir/a.less", "a"))
		assert.Equal(t, "a", readFile(t, out+"/sub/dir/a.less"))
	})

	t.Run("production keeps existing file", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, false)
		require.NoError(t, tree.Write(out+"/b.less", "first"))
		require.NoError(t, tree.Write(out+"/b.less", "second"))
		assert.Equal(t, "first", readFile(t, out+"/b.less"))
	})

	t.Run("dev overwrites", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, true)
		require.NoError(t, tree.Write(out+"/c.less", "first"))
		require.NoError(t, tree.Write(out+"/c.less", "second"))
		assert.Equal(t, "second", readFile(t, out+"/c.less"))
	})

	t.Run("outside root", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, true)
		err := tree.Write(source+"/escape.less", "x")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrOutOfRoot.Error())
	})

	t.Run("dot segments escaping root", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, true)
		err := tree.Write(out+"/colors-x/../../escape.play.less", "x")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrOutOfRoot.Error())
		assert.NoFileExists(t, filepath.Join(filepath.FromSlash(source), "escape.play.less"))
	})

	t.Run("dot segments inside root", func(t *testing.T) {
		tree := fs.NewOutputTree(out, source, true)
		require.NoError(t, tree.Write(out+"/sub/../d.less", "d"))
		assert.Equal(t, "d", readFile(t, out+"/d.less"))
	})
}

func TestOutputTree_Clear(t *testing.T) {
	source := filepath.ToSlash(t.TempDir())

	t.Run("removes output root", func(t *testing.T) {
		out := source + "/play-less"
		tree := fs.NewOutputTree(out, source, false)
		require.NoError(t, tree.Write(out+"/a.less", "a"))

		require.NoError(t, tree.Clear())
		_, err := os.Stat(filepath.FromSlash(out))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing root is fine", func(t *testing.T) {
		tree := fs.NewOutputTree(source+"/never-created", source, false)
		require.NoError(t, tree.Clear())
	})

	t.Run("refuses short path", func(t *testing.T) {
		tree := fs.NewOutputTree("/tmp", source, false)
		err := tree.Clear()
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnsafeClear.Error())
	})

	t.Run("refuses ancestor of source", func(t *testing.T) {
		tree := fs.NewOutputTree(filepath.ToSlash(filepath.Dir(source)), source, false)
		err := tree.Clear()
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrUnsafeClear.Error())
		_, statErr := os.Stat(filepath.FromSlash(source))
		assert.NoError(t, statErr)
	})
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{
		"main.less",
		"sub/partial.less",
		"sub/readme.txt",
		"play-less/main.less",
		".git/config.less",
		"node_modules/x.less",
	} {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte("x"), domain.PrivateFilePerm))
	}

	slashRoot := filepath.ToSlash(root)
	var files []string
	for f := range fs.NewWalker().WalkFiles(slashRoot, ".less", []string{slashRoot + "/play-less"}) {
		files = append(files, f)
	}

	assert.ElementsMatch(t, []string{slashRoot + "/main.less", slashRoot + "/sub/partial.less"}, files)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.less", "b.less", "c.less"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), domain.PrivateFilePerm))
	}

	count := 0
	for range fs.NewWalker().WalkFiles(filepath.ToSlash(root), ".less", nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestDigest(t *testing.T) {
	a := fs.Digest([]byte("body { color: red; }"))
	b := fs.Digest([]byte("body { color: red; }"))
	c := fs.Digest([]byte("body { color: blue; }"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.ToSlash(filepath.Join(t.TempDir(), "css", "main.css"))

	written, err := fs.WriteIfChanged(path, []byte(".a{}"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, ".a{}", readFile(t, path))

	written, err = fs.WriteIfChanged(path, []byte(".a{}"))
	require.NoError(t, err)
	assert.False(t, written)

	written, err = fs.WriteIfChanged(path, []byte(".b{}"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, ".b{}", readFile(t, path))
}
