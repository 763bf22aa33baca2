// Package commands 暴露给设置页调用的命令。
// 参数和返回值都是前端可序列化的简单类型，错误由绑定层转成字符串交给页面
package commands

import (
	"fmt"

	"chatdock/internal/autologin"
	"chatdock/internal/credentials"
	"chatdock/internal/logger"
	"chatdock/internal/service"
	"chatdock/internal/window"
)

// Commands 命令集合
type Commands struct {
	store        credentials.Store
	orchestrator *autologin.Orchestrator
}

// New 创建命令集合
func New(store credentials.Store, orchestrator *autologin.Orchestrator) *Commands {
	return &Commands{store: store, orchestrator: orchestrator}
}

// SaveCredentials 保存服务凭证
func (c *Commands) SaveCredentials(svc, username, password string) error {
	s, err := service.Parse(svc)
	if err != nil {
		return err
	}
	if err := c.store.Save(s, username, password); err != nil {
		logger.Error("save credentials for %s: %v", s, err)
		return err
	}
	logger.Info("credentials saved for %s", s)
	return nil
}

// GetCredentials 读取服务凭证，不存在时返回 nil
func (c *Commands) GetCredentials(svc string) (*credentials.Credentials, error) {
	s, err := service.Parse(svc)
	if err != nil {
		return nil, err
	}
	creds, found, err := c.store.Get(s)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &creds, nil
}

// DeleteCredentials 删除服务凭证
func (c *Commands) DeleteCredentials(svc string) error {
	s, err := service.Parse(svc)
	if err != nil {
		return err
	}
	if err := c.store.Delete(s); err != nil {
		return err
	}
	logger.Info("credentials deleted for %s", s)
	return nil
}

// AutoLogin 立即向窗口注入登录脚本。返回 false 表示没有保存凭证
func (c *Commands) AutoLogin(windowName, svc string) (bool, error) {
	name, err := window.ParseName(windowName)
	if err != nil {
		return false, err
	}
	s, err := service.Parse(svc)
	if err != nil {
		return false, err
	}
	ok, err := c.orchestrator.AutoLogin(name, s)
	if err != nil {
		logger.Warn("auto login %s into %s: %v", s, name, err)
	}
	return ok, err
}

// InjectBrowserEmulation 向窗口注入浏览器模拟脚本
func (c *Commands) InjectBrowserEmulation(windowName string) (bool, error) {
	name, err := window.ParseName(windowName)
	if err != nil {
		return false, err
	}
	ok, err := c.orchestrator.InjectEmulation(name)
	if err != nil {
		return false, fmt.Errorf("inject browser emulation into %s: %w", name, err)
	}
	return ok, nil
}
