//go:build windows

package tray

import (
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"chatdock/internal/logger"
)

// 任务栏使用 SystemUsesLightTheme，应用窗口使用 AppsUseLightTheme
const (
	themeRegKey  = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	themeRegName = `SystemUsesLightTheme`
)

// IsDarkMode 检测任务栏是否为暗色，读取失败按暗色处理
func IsDarkMode() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, themeRegKey, registry.QUERY_VALUE)
	if err != nil {
		return true
	}
	defer k.Close()
	return readDark(k, true)
}

func readDark(k registry.Key, fallback bool) bool {
	val, _, err := k.GetIntegerValue(themeRegName)
	if err != nil {
		return fallback
	}
	return val == 0
}

// MonitorThemeChange 在后台阻塞等待注册表变更，主题切换时回调。done 关闭后不再回调
func MonitorThemeChange(done <-chan struct{}, onChange func(isDark bool)) {
	k, err := registry.OpenKey(registry.CURRENT_USER, themeRegKey, windows.KEY_NOTIFY|registry.QUERY_VALUE)
	if err != nil {
		logger.Warn("theme monitor disabled: %v", err)
		return
	}

	go func() {
		defer k.Close()
		last := readDark(k, true)
		for {
			err := windows.RegNotifyChangeKeyValue(windows.Handle(k), false, windows.REG_NOTIFY_CHANGE_LAST_SET, 0, false)
			if err != nil {
				logger.Warn("theme monitor stopped: %v", err)
				return
			}
			select {
			case <-done:
				return
			default:
			}

			if dark := readDark(k, last); dark != last {
				last = dark
				onChange(dark)
			}
		}
	}()
}
