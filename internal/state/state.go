// Package state 保存进程级共享状态：各窗口焦点与托盘上次点击时间。
//
// 所有访问都用 TryLock：锁被占用时写操作直接丢弃、读操作返回 false。
// 原生事件线程上的回调因此永远不会阻塞；代价是偶尔丢失一次更新，
// 下一次系统焦点事件会把状态纠正过来。
package state

import (
	"sync"
	"time"

	"chatdock/internal/logger"
	"chatdock/internal/window"
)

// DefaultDoubleClickWindow 两次托盘单击间隔小于该值视为双击
const DefaultDoubleClickWindow = 300 * time.Millisecond

// AppState 焦点状态 + 托盘点击状态
type AppState struct {
	mu        sync.Mutex
	focus     map[window.Name]bool
	lastClick time.Time
}

// New 创建初始状态：无焦点，上次点击时间为 now
func New(now time.Time) *AppState {
	return &AppState{
		focus:     make(map[window.Name]bool),
		lastClick: now,
	}
}

// SetFocus 记录窗口焦点，锁被占用时跳过。返回是否写入
func (s *AppState) SetFocus(name window.Name, focused bool) bool {
	if !s.mu.TryLock() {
		logger.Debug("focus update skipped (busy): %s=%v", name, focused)
		return false
	}
	defer s.mu.Unlock()
	s.focus[name] = focused
	return true
}

// Focused 返回窗口当前是否持有焦点，锁被占用时返回 false
func (s *AppState) Focused(name window.Name) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	return s.focus[name]
}

// AnyFocused 任一窗口持有焦点。允许短暂出现多个 true
func (s *AppState) AnyFocused(names ...window.Name) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	for _, n := range names {
		if s.focus[n] {
			return true
		}
	}
	return false
}

// RegisterClick 判断本次点击是否为双击，并无条件记录本次点击时间。
// ok 为 false 表示锁被占用，本次点击被跳过
func (s *AppState) RegisterClick(now time.Time, doubleClickWindow time.Duration) (double bool, ok bool) {
	if !s.mu.TryLock() {
		logger.Debug("tray click skipped (busy)")
		return false, false
	}
	defer s.mu.Unlock()
	double = now.Sub(s.lastClick) < doubleClickWindow
	s.lastClick = now
	return double, true
}
