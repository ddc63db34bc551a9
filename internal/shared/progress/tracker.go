// Package progress は長時間かかる収集ランの進捗をプロセス内で追跡します。
package progress

import (
	"errors"
	"sync"
	"time"
)

// ErrAlreadyRunning は収集ランが既に進行中の場合に返されます。
var ErrAlreadyRunning = errors.New("progress: run already in progress")

// ラン状態
const (
	StateIdle     = "idle"
	StateRunning  = "running"
	StateComplete = "complete"
	StateError    = "error"
)

// Status はある時点のラン状態のスナップショットです。
type Status struct {
	State         string     `json:"state"`
	Total         int        `json:"total"`
	Completed     int        `json:"completed"`
	CurrentSymbol string     `json:"current_symbol,omitempty"`
	Progress      float64    `json:"progress"`
	Message       string     `json:"message,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty"`
}

// Tracker は単一の収集ランの進捗を保持します。
// 全メソッドは複数ゴルーチンから呼ばれても安全です。
type Tracker struct {
	mu         sync.Mutex
	state      string
	total      int
	completed  int
	current    string
	message    string
	startedAt  *time.Time
	finishedAt *time.Time
}

// NewTracker はアイドル状態のトラッカーを生成します。
func NewTracker() *Tracker {
	return &Tracker{state: StateIdle}
}

// Start は新しいランを開始します。既にランが進行中の場合は
// ErrAlreadyRunning を返し、状態は変更しません。
func (t *Tracker) Start(total int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == StateRunning {
		return ErrAlreadyRunning
	}
	now := time.Now()
	t.state = StateRunning
	t.total = total
	t.completed = 0
	t.current = ""
	t.message = ""
	t.startedAt = &now
	t.finishedAt = nil
	return nil
}

// Advance は1銘柄の処理完了を記録します。
func (t *Tracker) Advance(symbol string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != StateRunning {
		return
	}
	t.completed++
	t.current = symbol
}

// SetTotal はラン途中で総数を補正します（開始後に対象が確定する場合用）。
func (t *Tracker) SetTotal(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
}

// Complete はランを成功で終了します。
func (t *Tracker) Complete() {
	t.finish(StateComplete, "")
}

// Fail はランを失敗で終了し、原因メッセージを記録します。
func (t *Tracker) Fail(message string) {
	t.finish(StateError, message)
}

func (t *Tracker) finish(state, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.state = state
	t.current = ""
	t.message = message
	t.finishedAt = &now
}

// Reset はトラッカーをアイドル状態に戻します。進行中のランには使いません。
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateIdle
	t.total = 0
	t.completed = 0
	t.current = ""
	t.message = ""
	t.startedAt = nil
	t.finishedAt = nil
}

// Status は現在の状態のコピーを返します。
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := Status{
		State:         t.state,
		Total:         t.total,
		Completed:     t.completed,
		CurrentSymbol: t.current,
		Message:       t.message,
		StartedAt:     t.startedAt,
		FinishedAt:    t.finishedAt,
	}
	if t.total > 0 {
		s.Progress = float64(t.completed) / float64(t.total) * 100
	}
	return s
}
