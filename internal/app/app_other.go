//go:build !windows

package app

import "errors"

// ErrUnsupportedPlatform 桌面外壳依赖 WebView2 和 Windows 托盘
var ErrUnsupportedPlatform = errors.New("桌面外壳仅支持 Windows")

// Run 非 Windows 平台只提供命令行功能
func Run(configPath string) error {
	return ErrUnsupportedPlatform
}
