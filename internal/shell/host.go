// Package shell 把 window.Host 落到 wails v3 的 WebviewWindow 上
package shell

import (
	"fmt"
	"sync/atomic"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"chatdock/internal/logger"
	"chatdock/internal/window"
)

// Host wails 窗口宿主
type Host struct {
	app      *application.App
	quitting atomic.Bool
}

// NewHost 创建宿主
func NewHost(app *application.App) *Host {
	return &Host{app: app}
}

// SetQuitting 进入退出流程后不再拦截窗口关闭
func (h *Host) SetQuitting() {
	h.quitting.Store(true)
}

// Create 实现 window.Host。窗口创建后保持隐藏，由调用方决定何时显示
func (h *Host) Create(cfg window.Config, hooks window.Hooks) (window.Handle, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("window %s: empty url", cfg.Name)
	}

	opts := application.WebviewWindowOptions{
		Name:   string(cfg.Name),
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
		URL:    cfg.URL,
		Hidden: true,
	}
	if cfg.External() {
		opts.JS = cfg.InitScript
	}

	w := h.app.Window.NewWithOptions(opts)
	hd := &handle{name: cfg.Name, w: w}

	w.OnWindowEvent(events.Common.WindowFocus, func(*application.WindowEvent) {
		if hooks.OnFocusChanged != nil {
			hooks.OnFocusChanged(cfg.Name, true)
		}
	})
	w.OnWindowEvent(events.Common.WindowLostFocus, func(*application.WindowEvent) {
		if hooks.OnFocusChanged != nil {
			hooks.OnFocusChanged(cfg.Name, false)
		}
	})

	// 关闭按钮只隐藏窗口；退出时放行
	w.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		if h.quitting.Load() {
			hd.gone.Store(true)
			return
		}
		if hooks.OnCloseRequested != nil && hooks.OnCloseRequested(cfg.Name) {
			e.Cancel()
			return
		}
		hd.gone.Store(true)
	})

	logger.Debug("webview %s: %s (external=%v)", cfg.Name, cfg.URL, cfg.External())
	return hd, nil
}

// handle 包装 WebviewWindow，窗口销毁后所有操作返回 ErrWindowUnavailable
type handle struct {
	name window.Name
	w    *application.WebviewWindow
	gone atomic.Bool
}

func (h *handle) check() error {
	if h.gone.Load() {
		return fmt.Errorf("%w: %s", window.ErrWindowUnavailable, h.name)
	}
	return nil
}

func (h *handle) Show() error {
	if err := h.check(); err != nil {
		return err
	}
	h.w.Show()
	return nil
}

func (h *handle) Hide() error {
	if err := h.check(); err != nil {
		return err
	}
	h.w.Hide()
	return nil
}

func (h *handle) Focus() error {
	if err := h.check(); err != nil {
		return err
	}
	h.w.Focus()
	return nil
}

func (h *handle) IsVisible() (bool, error) {
	if err := h.check(); err != nil {
		return false, err
	}
	return h.w.IsVisible(), nil
}

func (h *handle) Eval(script string) error {
	if err := h.check(); err != nil {
		return err
	}
	h.w.ExecJS(script)
	return nil
}
