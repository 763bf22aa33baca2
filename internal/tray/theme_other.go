//go:build !windows

package tray

// IsDarkMode 非 Windows 平台按暗色处理
func IsDarkMode() bool {
	return true
}

// MonitorThemeChange 非 Windows 平台不监听主题
func MonitorThemeChange(done <-chan struct{}, onChange func(isDark bool)) {}
