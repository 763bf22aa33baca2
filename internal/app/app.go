//go:build windows

package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"chatdock/internal/autologin"
	"chatdock/internal/commands"
	"chatdock/internal/config"
	"chatdock/internal/credentials"
	"chatdock/internal/logger"
	"chatdock/internal/scripts"
	"chatdock/internal/shell"
	"chatdock/internal/state"
	"chatdock/internal/tray"
	"chatdock/internal/window"
)

// Run 运行桌面外壳，阻塞直到退出
func Run(configPath string) error {
	// 初始化日志
	if err := logger.Init(filepath.Dir(configPath)); err != nil {
		// 日志初始化失败，静默继续
	}
	defer logger.Close()

	logger.Info("Starting application...")

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		return err
	}
	logger.SetDebug(cfg.Debug)

	store, err := credentials.Open(cfg.Credentials.Backend, cfg.CredentialsDir())
	if err != nil {
		logger.Error("Failed to open credential store: %v", err)
		return err
	}
	logger.Info("Credential store: %s", cfg.Credentials.Backend)

	windowConfigs := cfg.WindowConfigs()
	shell.ApplyBrowserArgs(window.BrowserArgs(windowConfigs))

	var (
		st           = state.New(time.Now())
		registry     *window.Registry
		orchestrator *autologin.Orchestrator
		sm           *StateMachine
	)

	wailsApp := application.New(application.Options{
		Name:        "ChatDock",
		Description: "Gemini / Poe desktop shell",
		Assets:      shell.Assets(),
		Windows: application.WindowsOptions{
			DisableQuitOnLastWindowClosed: true,
		},
		SingleInstance: &application.SingleInstanceOptions{
			UniqueID: "io.chatdock.shell",
			OnSecondInstanceLaunch: func(data application.SecondInstanceData) {
				logger.Info("Second instance launched, showing %s", window.Default)
				registry.ShowAndFocus(window.Default)
			},
		},
	})

	host := shell.NewHost(wailsApp)
	registry = window.NewRegistry(host, windowConfigs, func(name window.Name, focused bool) {
		st.SetFocus(name, focused)
		orchestrator.OnFocusChanged(name, focused)
	})

	orchestrator = autologin.New(registry, store, scripts.NewEmulationLoader(cfg.EmulationScriptPath()), cfg.AutoLoginDelay)
	wailsApp.RegisterService(application.NewService(commands.New(store, orchestrator)))

	controller := tray.NewController(registry, st, func() {
		sm.Transition(EventQuitRequested)
	})
	controller.SetDoubleClickWindow(cfg.DoubleClickWindow)
	trayApp := tray.NewApp(controller)

	sm = NewStateMachine(StateStarting, func(change StateChange) {
		switch {
		case change.To == StateQuitting:
			host.SetQuitting()
			trayApp.Quit()
			wailsApp.Quit()
		case change.To == StateStopped && change.From != StateQuitting:
			// 事件循环自行退出，托盘还在
			trayApp.Quit()
		}
	})

	// 配置热加载：调试开关、自动登录等待和双击阈值即时生效
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		logger.Warn("Failed to create config dir: %v", err)
	}
	watcher, err := config.Watch(configPath, 0, func(c *config.Config) {
		logger.SetDebug(c.Debug)
		orchestrator.SetDelay(c.AutoLoginDelay)
		controller.SetDoubleClickWindow(c.DoubleClickWindow)
		sm.Transition(EventConfigReloaded)
	})
	if err != nil {
		logger.Warn("Config hot reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	// 处理系统信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received signal %v", sig)
			sm.Transition(EventQuitRequested)
		case <-trayApp.Done():
		}
	}()

	// gemini 在启动时创建，保持隐藏直到用户点击托盘
	if _, ok := registry.GetOrCreate(window.Gemini); !ok {
		logger.Warn("Gemini window unavailable at startup")
	}

	go trayApp.Run(func() {
		sm.Transition(EventReady)
	}, nil)

	runErr := wailsApp.Run()
	sm.Transition(EventShutdown)
	orchestrator.Wait()

	if runErr != nil {
		logger.Error("Event loop exited: %v", runErr)
		return fmt.Errorf("运行桌面外壳失败: %w", runErr)
	}
	logger.Info("Application stopped")
	return nil
}
