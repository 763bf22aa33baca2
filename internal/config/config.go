package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"chatdock/internal/autologin"
	"chatdock/internal/credentials"
	"chatdock/internal/logger"
	"chatdock/internal/scripts"
	"chatdock/internal/state"
	"chatdock/internal/window"
)

const fileName = "config.yaml"

// Config 应用配置
type Config struct {
	Debug             bool              `yaml:"debug,omitempty"`
	AutoLoginDelay    time.Duration     `yaml:"auto_login_delay,omitempty"`    // 获得焦点到自动登录的等待，默认 2s
	DoubleClickWindow time.Duration     `yaml:"double_click_window,omitempty"` // 托盘双击判定阈值，默认 300ms
	Credentials       CredentialsConfig `yaml:"credentials,omitempty"`
	// EmulationScript 覆盖内置的浏览器模拟脚本
	EmulationScript string                    `yaml:"emulation_script,omitempty"`
	Windows         map[string]WindowOverride `yaml:"windows,omitempty"`

	// dir 配置文件所在目录，由 Load 设置
	dir string
}

// CredentialsConfig 凭证存储配置
type CredentialsConfig struct {
	Backend string `yaml:"backend,omitempty"` // file 或 keyring
	Dir     string `yaml:"dir,omitempty"`     // file 后端的目录
}

// WindowOverride 单个窗口的配置覆盖，零值字段保持内置值
type WindowOverride struct {
	URL       string `yaml:"url,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Width     int    `yaml:"width,omitempty"`
	Height    int    `yaml:"height,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		AutoLoginDelay:    autologin.DefaultDelay,
		DoubleClickWindow: state.DefaultDoubleClickWindow,
		Credentials: CredentialsConfig{
			Backend: credentials.BackendFile,
		},
	}
}

// DefaultDir 配置、日志和凭证的根目录
func DefaultDir() string {
	return logger.DefaultDir()
}

// DefaultConfigPath 默认配置文件路径
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), fileName)
}

// Exists 检查配置文件是否存在
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load 加载配置文件，文件不存在时返回默认配置
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.dir = filepath.Dir(path)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 设置默认值：YAML 中未设置或非法的时长按默认处理
	if cfg.AutoLoginDelay < 0 {
		cfg.AutoLoginDelay = autologin.DefaultDelay
	}
	if cfg.DoubleClickWindow <= 0 {
		cfg.DoubleClickWindow = state.DefaultDoubleClickWindow
	}
	if cfg.Credentials.Backend == "" {
		cfg.Credentials.Backend = credentials.BackendFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查后端名称和窗口名
func (c *Config) Validate() error {
	switch c.Credentials.Backend {
	case credentials.BackendFile, credentials.BackendKeyring:
	default:
		return fmt.Errorf("未知的凭证存储后端: %q", c.Credentials.Backend)
	}
	for name := range c.Windows {
		if _, err := window.ParseName(name); err != nil {
			return fmt.Errorf("配置了未知窗口 %q: %w", name, err)
		}
	}
	return nil
}

// Save 保存配置到文件
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	// 确保目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// CredentialsDir 凭证目录，未配置时为配置文件同目录下的 credentials，与日志放在一起
func (c *Config) CredentialsDir() string {
	if c.Credentials.Dir != "" {
		return expandPath(c.Credentials.Dir)
	}
	return filepath.Join(c.Dir(), "credentials")
}

// Dir 配置文件所在目录，未从文件加载时为默认目录
func (c *Config) Dir() string {
	if c.dir == "" {
		return DefaultDir()
	}
	return c.dir
}

// EmulationScriptPath 浏览器模拟脚本覆盖路径，空表示使用内置脚本
func (c *Config) EmulationScriptPath() string {
	return expandPath(c.EmulationScript)
}

// WindowConfigs 内置窗口配置叠加用户覆盖。外部服务窗口附带创建时注入脚本
func (c *Config) WindowConfigs() map[window.Name]window.Config {
	configs := window.DefaultConfigs()
	initScript := scripts.InitScript()

	for name, wc := range configs {
		if o, ok := c.Windows[string(name)]; ok {
			if o.URL != "" {
				wc.URL = o.URL
			}
			if o.Title != "" {
				wc.Title = o.Title
			}
			if o.Width > 0 {
				wc.Width = o.Width
			}
			if o.Height > 0 {
				wc.Height = o.Height
			}
			if o.UserAgent != "" && wc.External() {
				wc.UserAgent = o.UserAgent
			}
		}
		if wc.External() {
			wc.InitScript = initScript
		}
		configs[name] = wc
	}
	return configs
}

// expandPath 展开路径中的 ~ 符号
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
