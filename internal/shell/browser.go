package shell

import (
	"os"
	"strings"
)

// BrowserArgsEnv WebView2 在创建浏览器进程时读取的附加参数
const BrowserArgsEnv = "WEBVIEW2_ADDITIONAL_BROWSER_ARGUMENTS"

// ApplyBrowserArgs 在创建任何窗口前写入环境变量，保留用户已设置的参数。
// WebView2 的浏览器进程由所有窗口共享，参数只能进程级设置，本地设置页也会带上
func ApplyBrowserArgs(args []string) {
	if len(args) == 0 {
		return
	}
	joined := strings.Join(args, " ")
	if prev := os.Getenv(BrowserArgsEnv); prev != "" {
		joined = prev + " " + joined
	}
	os.Setenv(BrowserArgsEnv, joined)
}
