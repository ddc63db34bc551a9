package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTrackerLifecycle は idle -> running -> complete の遷移を検証します。
func TestTrackerLifecycle(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	assert.Equal(t, StateIdle, tr.Status().State)

	require.NoError(t, tr.Start(3))
	s := tr.Status()
	assert.Equal(t, StateRunning, s.State)
	assert.Equal(t, 3, s.Total)
	assert.NotNil(t, s.StartedAt)

	tr.Advance("ABCD")
	tr.Advance("EFGH")
	s = tr.Status()
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, "EFGH", s.CurrentSymbol)
	assert.InDelta(t, 66.67, s.Progress, 0.01)

	tr.Advance("IJKL")
	tr.Complete()
	s = tr.Status()
	assert.Equal(t, StateComplete, s.State)
	assert.Equal(t, 100.0, s.Progress)
	assert.NotNil(t, s.FinishedAt)
	assert.Empty(t, s.CurrentSymbol)
}

// TestTrackerStartWhileRunning は二重起動が拒否されることを検証します。
func TestTrackerStartWhileRunning(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	require.NoError(t, tr.Start(5))
	assert.ErrorIs(t, tr.Start(5), ErrAlreadyRunning)

	// 元のランの状態は保持される
	s := tr.Status()
	assert.Equal(t, 5, s.Total)
	assert.Zero(t, s.Completed)
}

// TestTrackerFail は失敗終了でメッセージが残ることを検証します。
func TestTrackerFail(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	require.NoError(t, tr.Start(2))
	tr.Fail("no tickers configured")

	s := tr.Status()
	assert.Equal(t, StateError, s.State)
	assert.Equal(t, "no tickers configured", s.Message)
	assert.NotNil(t, s.FinishedAt)

	// 失敗後は再スタートできる
	assert.NoError(t, tr.Start(2))
}

// TestTrackerReset はリセットで全フィールドが初期化されることを検証します。
func TestTrackerReset(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	require.NoError(t, tr.Start(4))
	tr.Advance("ABCD")
	tr.Complete()

	tr.Reset()
	assert.Equal(t, Status{State: StateIdle}, tr.Status())
}

// TestTrackerConcurrentAdvance は並行 Advance でカウントが欠落しないことを検証します。
func TestTrackerConcurrentAdvance(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	require.NoError(t, tr.Start(100))

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Advance("ABCD")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, tr.Status().Completed)
}
