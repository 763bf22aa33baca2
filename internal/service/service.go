// Package service 定义托管的聊天服务（封闭枚举）
package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownService 服务名不在支持列表中
var ErrUnknownService = errors.New("unknown service")

// Service 托管的外部聊天服务
type Service int

const (
	Unknown Service = iota
	Gemini
	Poe
)

// All 返回所有受支持的服务
func All() []Service {
	return []Service{Gemini, Poe}
}

// String 返回服务的规范名称，与窗口名、凭证文件名一致
func (s Service) String() string {
	switch s {
	case Gemini:
		return "gemini"
	case Poe:
		return "poe"
	default:
		return "unknown"
	}
}

// Parse 解析服务名，大小写与首尾空白不敏感
func Parse(name string) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini":
		return Gemini, nil
	case "poe":
		return Poe, nil
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownService, name)
}
