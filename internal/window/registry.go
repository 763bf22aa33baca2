// Package window 管理托管浏览器窗口：按名称懒创建、显示、隐藏、聚焦和脚本注入
package window

import (
	"errors"
	"fmt"
	"sync"

	"chatdock/internal/logger"
)

// ErrWindowUnavailable 窗口不存在或已被引擎销毁
var ErrWindowUnavailable = errors.New("window unavailable")

// Handle 原生窗口句柄，由 Host 实现
type Handle interface {
	Show() error
	Hide() error
	Focus() error
	IsVisible() (bool, error)
	// Eval 在页面上下文中执行脚本
	Eval(script string) error
}

// Hooks 原生窗口事件回调，均在原生事件线程上调用，不能阻塞
type Hooks struct {
	OnFocusChanged func(name Name, focused bool)
	// OnCloseRequested 返回 true 表示阻止销毁
	OnCloseRequested func(name Name) bool
}

// Host 创建原生窗口的浏览器引擎
type Host interface {
	Create(cfg Config, hooks Hooks) (Handle, error)
}

type entry struct {
	handle    Handle
	lifecycle *Lifecycle
}

// Registry 窗口注册表
type Registry struct {
	host    Host
	configs map[Name]Config
	onFocus func(Name, bool)

	createMu sync.Mutex
	mu       sync.Mutex
	windows  map[Name]*entry
}

// NewRegistry 创建窗口注册表。onFocus 会挂到每个新建窗口的焦点事件上
func NewRegistry(host Host, configs map[Name]Config, onFocus func(Name, bool)) *Registry {
	if configs == nil {
		configs = DefaultConfigs()
	}
	return &Registry{
		host:    host,
		configs: configs,
		onFocus: onFocus,
		windows: make(map[Name]*entry),
	}
}

// Config 返回窗口配置
func (r *Registry) Config(name Name) (Config, bool) {
	cfg, ok := r.configs[name]
	return cfg, ok
}

func (r *Registry) lookup(name Name) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows[name]
}

// Get 返回已创建的窗口
func (r *Registry) Get(name Name) (Handle, bool) {
	e := r.lookup(name)
	if e == nil {
		return nil, false
	}
	return e.handle, true
}

// GetOrCreate 返回已有窗口，没有则按配置创建。创建失败只记日志，返回 false
func (r *Registry) GetOrCreate(name Name) (Handle, bool) {
	if e := r.lookup(name); e != nil {
		return e.handle, true
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()

	if e := r.lookup(name); e != nil {
		return e.handle, true
	}

	cfg, ok := r.configs[name]
	if !ok {
		logger.Error("window %s: no configuration", name)
		return nil, false
	}

	h, err := r.host.Create(cfg, Hooks{
		OnFocusChanged:   r.focusChanged,
		OnCloseRequested: r.CloseRequested,
	})
	if err != nil || h == nil {
		logger.Error("window %s: create failed: %v", name, err)
		return nil, false
	}

	e := &entry{handle: h, lifecycle: NewLifecycle(name, StateUncreated)}
	e.lifecycle.Transition(EventCreated)

	r.mu.Lock()
	r.windows[name] = e
	r.mu.Unlock()

	logger.Info("window %s: created (%s)", name, cfg.URL)
	return h, true
}

func (r *Registry) focusChanged(name Name, focused bool) {
	if r.onFocus != nil {
		r.onFocus(name, focused)
	}
}

func (r *Registry) record(name Name, event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e := r.windows[name]; e != nil {
		e.lifecycle.Transition(event)
	}
}

// Show 显示窗口，窗口不存在时跳过
func (r *Registry) Show(name Name) {
	e := r.lookup(name)
	if e == nil {
		return
	}
	if err := e.handle.Show(); err != nil {
		logger.Warn("window %s: show failed: %v", name, err)
		return
	}
	r.record(name, EventShown)
}

// Hide 隐藏窗口，窗口不存在时跳过
func (r *Registry) Hide(name Name) {
	e := r.lookup(name)
	if e == nil {
		return
	}
	if err := e.handle.Hide(); err != nil {
		logger.Warn("window %s: hide failed: %v", name, err)
		return
	}
	r.record(name, EventHidden)
}

// Focus 聚焦窗口，窗口不存在时跳过
func (r *Registry) Focus(name Name) {
	e := r.lookup(name)
	if e == nil {
		return
	}
	if err := e.handle.Focus(); err != nil {
		logger.Warn("window %s: focus failed: %v", name, err)
	}
}

// ShowAndFocus 创建（如需要）、显示并聚焦窗口
func (r *Registry) ShowAndFocus(name Name) bool {
	if _, ok := r.GetOrCreate(name); !ok {
		return false
	}
	r.Show(name)
	r.Focus(name)
	return true
}

// IsVisible 窗口不存在或查询失败时返回 false
func (r *Registry) IsVisible(name Name) bool {
	e := r.lookup(name)
	if e == nil {
		return false
	}
	visible, err := e.handle.IsVisible()
	if err != nil {
		logger.Debug("window %s: visibility query failed: %v", name, err)
		return false
	}
	return visible
}

// CloseRequested 关闭即隐藏：窗口保留会话状态，始终阻止销毁
func (r *Registry) CloseRequested(name Name) bool {
	e := r.lookup(name)
	if e == nil {
		return true
	}
	if err := e.handle.Hide(); err != nil {
		logger.Warn("window %s: hide on close failed: %v", name, err)
	}
	r.record(name, EventCloseRequested)
	return true
}

// Eval 向窗口注入脚本，这是唯一会返回结构化错误的注入原语
func (r *Registry) Eval(name Name, script string) error {
	e := r.lookup(name)
	if e == nil {
		return fmt.Errorf("%w: %s", ErrWindowUnavailable, name)
	}
	if err := e.handle.Eval(script); err != nil {
		return fmt.Errorf("inject into %s: %w", name, err)
	}
	return nil
}

// State 返回窗口生命周期状态
func (r *Registry) State(name Name) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e := r.windows[name]; e != nil {
		return e.lifecycle.Current()
	}
	return StateUncreated
}
