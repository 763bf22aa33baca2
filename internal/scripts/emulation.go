package scripts

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed assets/browser_emulation.js
var browserEmulation string

//go:embed assets/init_script.js
var initScript string

// InitScript 返回窗口创建时注册的初始化脚本
func InitScript() string {
	return initScript
}

// EmulationLoader 加载浏览器特征模拟脚本。Path 为空时使用内置脚本
type EmulationLoader struct {
	Path string
}

// NewEmulationLoader 创建加载器
func NewEmulationLoader(path string) *EmulationLoader {
	return &EmulationLoader{Path: path}
}

// Load 返回脚本内容。覆盖文件缺失是硬错误，错误中包含尝试的路径
func (l *EmulationLoader) Load() (string, error) {
	if l == nil || l.Path == "" {
		return browserEmulation, nil
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return "", fmt.Errorf("加载浏览器模拟脚本失败 (%s): %w", l.Path, err)
	}
	return string(data), nil
}
