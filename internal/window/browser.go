package window

import "strings"

// BrowserArgs 按窗口优先级汇总外部服务窗口的浏览器参数和 UA，去重
func BrowserArgs(configs map[Name]Config) []string {
	var args []string
	seen := make(map[string]bool)
	add := func(a string) {
		if a != "" && !seen[a] {
			seen[a] = true
			args = append(args, a)
		}
	}

	for _, name := range Names() {
		cfg, ok := configs[name]
		if !ok || !cfg.External() {
			continue
		}
		for _, a := range cfg.BrowserArgs {
			add(a)
		}
		if cfg.UserAgent != "" && !hasUserAgent(args) {
			add(`--user-agent="` + cfg.UserAgent + `"`)
		}
	}
	return args
}

func hasUserAgent(args []string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, "--user-agent=") {
			return true
		}
	}
	return false
}
