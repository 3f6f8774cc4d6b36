package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/adapters/watcher"
)

// batches records callback invocations.
type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_Add_Coalesces(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/css/theme.less")
		d.Add("/css/main.less")
		d.Add("/css/theme.less")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, b.snapshot(), 1)
		assert.Equal(t, []string{"/css/main.less", "/css/theme.less"}, b.snapshot()[0])
	})
}

func TestDebouncer_Add_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/css/a.less")
		time.Sleep(50 * time.Millisecond)
		d.Add("/css/b.less")
		time.Sleep(50 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.snapshot(), 1)
		assert.Equal(t, []string{"/css/a.less", "/css/b.less"}, b.snapshot()[0])
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Flush()
		assert.Empty(t, b.snapshot())

		d.Add("/css/a.less")
		d.Flush()
		require.Len(t, b.snapshot(), 1)

		// The stopped timer must not deliver the batch again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, b.snapshot(), 1)

		d.Add("/css/b.less")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.snapshot(), 2)
		assert.Equal(t, []string{"/css/b.less"}, b.snapshot()[1])

		// Already fired.
		d.Flush()
		assert.Len(t, b.snapshot(), 2)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)

		d.Add("/css/a.less")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		d.Add("/css/b.less")
		d.Flush()
	})
}
