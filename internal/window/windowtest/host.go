// Package windowtest 提供内存中的窗口宿主，用于测试依赖 window.Registry 的代码
package windowtest

import (
	"errors"
	"sync"

	"chatdock/internal/window"
)

// ErrDestroyed 在已销毁窗口上注入脚本时返回
var ErrDestroyed = errors.New("webview destroyed")

// Host 模拟的浏览器引擎，行为近似单座席桌面：同一时间只有一个窗口持有焦点
type Host struct {
	mu         sync.Mutex
	windows    map[window.Name]*Window
	failCreate map[window.Name]error
	created    []window.Name
}

// NewHost 创建模拟宿主
func NewHost() *Host {
	return &Host{
		windows:    make(map[window.Name]*Window),
		failCreate: make(map[window.Name]error),
	}
}

// FailCreate 让指定窗口的创建失败
func (h *Host) FailCreate(name window.Name, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failCreate[name] = err
}

// Create 实现 window.Host
func (h *Host) Create(cfg window.Config, hooks window.Hooks) (window.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failCreate[cfg.Name]; err != nil {
		return nil, err
	}
	w := &Window{host: h, cfg: cfg, hooks: hooks}
	h.windows[cfg.Name] = w
	h.created = append(h.created, cfg.Name)
	return w, nil
}

// Window 返回已创建的模拟窗口
func (h *Host) Window(name window.Name) *Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windows[name]
}

// Created 返回按创建顺序排列的窗口名
func (h *Host) Created() []window.Name {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]window.Name(nil), h.created...)
}

func (h *Host) focused() *Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.windows {
		if w.Focused() {
			return w
		}
	}
	return nil
}

// Window 模拟的原生窗口
type Window struct {
	host  *Host
	cfg   window.Config
	hooks window.Hooks

	mu         sync.Mutex
	visible    bool
	focused    bool
	destroyed  bool
	scripts    []string
	evalErr    error
	visibleErr error
}

// Config 返回创建时的配置
func (w *Window) Config() window.Config { return w.cfg }

// Show 实现 window.Handle
func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return ErrDestroyed
	}
	w.visible = true
	return nil
}

// Hide 实现 window.Handle，失去焦点时触发回调
func (w *Window) Hide() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	w.visible = false
	lost := w.focused
	w.focused = false
	w.mu.Unlock()

	if lost {
		w.fireFocus(false)
	}
	return nil
}

// Focus 实现 window.Handle。隐藏的窗口拿不到焦点；之前持有焦点的窗口会收到失焦回调
func (w *Window) Focus() error {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return ErrDestroyed
	}
	if !w.visible || w.focused {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	if prev := w.host.focused(); prev != nil && prev != w {
		prev.mu.Lock()
		prev.focused = false
		prev.mu.Unlock()
		prev.fireFocus(false)
	}

	w.mu.Lock()
	w.focused = true
	w.mu.Unlock()
	w.fireFocus(true)
	return nil
}

// IsVisible 实现 window.Handle
func (w *Window) IsVisible() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.visibleErr != nil {
		return false, w.visibleErr
	}
	return w.visible, nil
}

// Eval 实现 window.Handle，记录注入的脚本
func (w *Window) Eval(script string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.destroyed {
		return ErrDestroyed
	}
	if w.evalErr != nil {
		return w.evalErr
	}
	w.scripts = append(w.scripts, script)
	return nil
}

// Focused 返回窗口是否持有焦点
func (w *Window) Focused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// Visible 返回窗口是否可见
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Scripts 返回已注入脚本的副本
func (w *Window) Scripts() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.scripts...)
}

// SetEvalError 让后续注入失败
func (w *Window) SetEvalError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.evalErr = err
}

// SetVisibleError 让可见性查询失败
func (w *Window) SetVisibleError(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visibleErr = err
}

// Destroy 模拟引擎销毁窗口
func (w *Window) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	w.visible = false
	w.focused = false
}

// Close 模拟用户点击关闭按钮，返回销毁是否被阻止
func (w *Window) Close() bool {
	prevented := false
	if w.hooks.OnCloseRequested != nil {
		prevented = w.hooks.OnCloseRequested(w.cfg.Name)
	}
	if !prevented {
		w.Destroy()
	}
	return prevented
}

// SimulateFocus 直接触发焦点回调，不改变模拟状态，用于构造重复或乱序的系统事件
func (w *Window) SimulateFocus(focused bool) {
	w.fireFocus(focused)
}

func (w *Window) fireFocus(focused bool) {
	if w.hooks.OnFocusChanged != nil {
		w.hooks.OnFocusChanged(w.cfg.Name, focused)
	}
}
