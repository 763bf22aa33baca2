package tray

import (
	"sync"

	"github.com/energye/systray"

	"chatdock/internal/icons"
	"chatdock/internal/logger"
)

const tooltip = "ChatDock - Gemini / Poe"

// menuItem 托盘菜单项定义，按显示顺序排列
type menuItem struct {
	id        MenuID
	title     string
	tooltip   string
	separator bool // 在该项之前插入分隔线
}

var menuItems = []menuItem{
	{id: MenuShow, title: "显示", tooltip: "显示 Gemini 窗口"},
	{id: MenuHide, title: "隐藏", tooltip: "隐藏聊天窗口"},
	{id: MenuGemini, title: "Gemini", tooltip: "切换到 Gemini", separator: true},
	{id: MenuPoe, title: "Poe", tooltip: "切换到 Poe"},
	{id: MenuSettings, title: "设置", tooltip: "打开设置窗口", separator: true},
	{id: MenuQuit, title: "退出", tooltip: "退出程序", separator: true},
}

// App 系统托盘应用
type App struct {
	controller *Controller
	quitOnce   sync.Once
	quitCh     chan struct{}

	// 主题相关
	themeMu    sync.Mutex
	isDarkMode bool
}

// NewApp 创建托盘应用
func NewApp(controller *Controller) *App {
	return &App{
		controller: controller,
		quitCh:     make(chan struct{}),
		isDarkMode: IsDarkMode(),
	}
}

// Run 运行托盘应用，阻塞直到 Quit。systray 会锁定当前 OS 线程运行自己的消息循环
func (t *App) Run(onReady func(), onQuit func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, func() {
		t.quitOnce.Do(func() { close(t.quitCh) })
		if onQuit != nil {
			onQuit()
		}
	})
}

// Quit 移除托盘图标并结束 Run
func (t *App) Quit() {
	systray.Quit()
}

// Done 托盘退出后关闭
func (t *App) Done() <-chan struct{} {
	return t.quitCh
}

// onReady 托盘就绪回调
func (t *App) onReady() {
	logger.Info("Tray onReady called, isDarkMode=%v", t.isDarkMode)
	t.applyIcon()
	systray.SetTitle("ChatDock")
	systray.SetTooltip(tooltip)

	// 监听系统主题变化
	MonitorThemeChange(t.quitCh, func(isDark bool) {
		logger.Info("Theme changed: isDarkMode=%v", isDark)
		t.themeMu.Lock()
		t.isDarkMode = isDark
		t.themeMu.Unlock()
		t.applyIcon()
	})

	// 左键抬起走决策表，右键弹出菜单
	systray.SetOnClick(func(menu systray.IMenu) {
		t.controller.HandleLeftClick()
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		if err := menu.ShowMenu(); err != nil {
			logger.Warn("show tray menu: %v", err)
		}
	})

	for _, item := range menuItems {
		if item.separator {
			systray.AddSeparator()
		}
		mi := systray.AddMenuItem(item.title, item.tooltip)
		id := item.id
		mi.Click(func() {
			t.controller.HandleMenu(id)
		})
	}

	logger.Info("Tray initialized")
}

// applyIcon 按当前主题设置图标
func (t *App) applyIcon() {
	t.themeMu.Lock()
	dark := t.isDarkMode
	t.themeMu.Unlock()

	data, err := icons.TrayICO(dark)
	if err != nil {
		logger.Error("render tray icon: %v", err)
		return
	}
	systray.SetIcon(data)
}
