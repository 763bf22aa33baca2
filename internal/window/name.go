package window

import (
	"fmt"
	"strings"

	"chatdock/internal/service"
)

// Name 窗口标识，所有按名称寻址窗口的地方都使用它
type Name string

const (
	Gemini   Name = "gemini"
	Poe      Name = "poe"
	Settings Name = "settings"
)

// Default 托盘单击时显示的默认窗口
const Default = Gemini

// Names 返回全部窗口名，顺序即“置前”时的优先级
func Names() []Name {
	return []Name{Gemini, Poe, Settings}
}

// ParseName 解析窗口名
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	switch n {
	case Gemini, Poe, Settings:
		return n, nil
	}
	return "", fmt.Errorf("未知窗口: %q", s)
}

// Service 返回窗口承载的服务；settings 窗口没有对应服务
func (n Name) Service() (service.Service, bool) {
	switch n {
	case Gemini:
		return service.Gemini, true
	case Poe:
		return service.Poe, true
	}
	return service.Unknown, false
}
