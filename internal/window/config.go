package window

// DesktopUserAgent 外部服务窗口使用的桌面浏览器 UA
const DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

// ExternalBrowserArgs 外部服务窗口的浏览器参数：关闭跨源隔离与混合内容拦截，
// 注入脚本才能访问页面 DOM
var ExternalBrowserArgs = []string{
	"--disable-web-security",
	"--allow-running-insecure-content",
	"--disable-site-isolation-trials",
	"--disable-features=IsolateOrigins,site-per-process,CrossOriginOpenerPolicy",
	"--disable-blink-features=AutomationControlled",
}

// Config 单个窗口的创建参数
type Config struct {
	Name      Name
	Title     string
	URL       string // Local 为 true 时是打包资源内的路径
	Width     int
	Height    int
	UserAgent string
	// BrowserArgs 仅外部服务窗口设置
	BrowserArgs []string
	Local       bool
	// InitScript 在每次页面加载前注入
	InitScript string
}

// External 是否加载外部网络地址
func (c Config) External() bool {
	return !c.Local
}

// DefaultConfigs 返回内置窗口配置
func DefaultConfigs() map[Name]Config {
	return map[Name]Config{
		Gemini: {
			Name:        Gemini,
			Title:       "Gemini",
			URL:         "https://gemini.google.com/app",
			Width:       1100,
			Height:      800,
			UserAgent:   DesktopUserAgent,
			BrowserArgs: append([]string(nil), ExternalBrowserArgs...),
		},
		Poe: {
			Name:        Poe,
			Title:       "Poe",
			URL:         "https://poe.com",
			Width:       1100,
			Height:      800,
			UserAgent:   DesktopUserAgent,
			BrowserArgs: append([]string(nil), ExternalBrowserArgs...),
		},
		Settings: {
			Name:   Settings,
			Title:  "设置",
			URL:    "/settings.html",
			Width:  480,
			Height: 560,
			Local:  true,
		},
	}
}
