package tray

import (
	"sync/atomic"
	"time"

	"chatdock/internal/logger"
	"chatdock/internal/state"
	"chatdock/internal/window"
)

// Windows 控制器需要的窗口操作，window.Registry 实现它
type Windows interface {
	GetOrCreate(name window.Name) (window.Handle, bool)
	Show(name window.Name)
	Hide(name window.Name)
	Focus(name window.Name)
	IsVisible(name window.Name) bool
}

// ClickState 点击判定读取的共享状态，state.AppState 实现它。
// 锁被占用时 AnyFocused 返回 false，RegisterClick 返回 ok=false
type ClickState interface {
	AnyFocused(names ...window.Name) bool
	RegisterClick(now time.Time, doubleClickWindow time.Duration) (double bool, ok bool)
}

// Decision 托盘左键单击的处理结果
type Decision int

const (
	DecisionSkipped      Decision = iota // 状态锁被占用，本次点击被跳过
	DecisionShowDefault                  // 没有可见窗口：显示并聚焦默认窗口
	DecisionHideAll                      // 无焦点或双击：隐藏所有可见窗口
	DecisionBringToFront                 // 聚焦第一个可见窗口
)

// String 返回结果的可读名称
func (d Decision) String() string {
	switch d {
	case DecisionSkipped:
		return "Skipped"
	case DecisionShowDefault:
		return "ShowDefault"
	case DecisionHideAll:
		return "HideAll"
	case DecisionBringToFront:
		return "BringToFront"
	default:
		return "Unknown"
	}
}

// Decide 按优先级决定左键单击的动作
func Decide(anyVisible, anyFocused, doubleClick bool) Decision {
	switch {
	case !anyVisible:
		return DecisionShowDefault
	case !anyFocused || doubleClick:
		return DecisionHideAll
	default:
		return DecisionBringToFront
	}
}

// MenuID 托盘菜单项
type MenuID string

const (
	MenuQuit     MenuID = "quit"
	MenuShow     MenuID = "show"
	MenuHide     MenuID = "hide"
	MenuGemini   MenuID = "gemini"
	MenuPoe      MenuID = "poe"
	MenuSettings MenuID = "settings"
)

// Controller 把托盘点击和菜单选择翻译成窗口操作
type Controller struct {
	windows Windows
	state   ClickState
	quit    func()
	now     func() time.Time

	doubleClick atomic.Int64
}

// NewController 创建托盘控制器
func NewController(windows Windows, st ClickState, quit func()) *Controller {
	c := &Controller{
		windows: windows,
		state:   st,
		quit:    quit,
		now:     time.Now,
	}
	c.SetDoubleClickWindow(state.DefaultDoubleClickWindow)
	return c
}

// SetDoubleClickWindow 修改双击判定阈值
func (c *Controller) SetDoubleClickWindow(d time.Duration) {
	if d <= 0 {
		d = state.DefaultDoubleClickWindow
	}
	c.doubleClick.Store(int64(d))
}

// HandleLeftClick 处理托盘图标左键抬起
func (c *Controller) HandleLeftClick() Decision {
	names := window.Names()

	anyVisible := false
	for _, n := range names {
		if c.windows.IsVisible(n) {
			anyVisible = true
			break
		}
	}
	anyFocused := c.state.AnyFocused(names...)

	double, ok := c.state.RegisterClick(c.now(), time.Duration(c.doubleClick.Load()))
	if !ok {
		return DecisionSkipped
	}

	d := Decide(anyVisible, anyFocused, double)
	logger.Debug("tray click: visible=%v focused=%v double=%v -> %s", anyVisible, anyFocused, double, d)

	switch d {
	case DecisionShowDefault:
		c.showAndFocus(window.Default)
	case DecisionHideAll:
		for _, n := range names {
			if c.windows.IsVisible(n) {
				c.windows.Hide(n)
			}
		}
	case DecisionBringToFront:
		for _, n := range names {
			if c.windows.IsVisible(n) {
				c.windows.Focus(n)
				break
			}
		}
	}
	return d
}

// HandleMenu 处理菜单选择，不经过双击判定
func (c *Controller) HandleMenu(id MenuID) {
	logger.Debug("tray menu: %s", id)
	switch id {
	case MenuQuit:
		if c.quit != nil {
			c.quit()
		}
	case MenuShow:
		c.showAndFocus(window.Gemini)
	case MenuHide:
		c.windows.Hide(window.Gemini)
		c.windows.Hide(window.Poe)
	case MenuGemini:
		c.windows.Hide(window.Poe)
		c.showAndFocus(window.Gemini)
	case MenuPoe:
		c.windows.Hide(window.Gemini)
		c.showAndFocus(window.Poe)
	case MenuSettings:
		c.showAndFocus(window.Settings)
	default:
		logger.Warn("tray menu: unknown item %q", id)
	}
}

func (c *Controller) showAndFocus(name window.Name) {
	if _, ok := c.windows.GetOrCreate(name); !ok {
		return
	}
	c.windows.Show(name)
	c.windows.Focus(name)
}
