// Package version 保存构建时通过 ldflags 注入的版本信息
package version

// 构建时注入：
//
//	go build -ldflags "-X chatdock/internal/version.Version=1.2.0 -X chatdock/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String 返回 "版本 (提交)" 形式的摘要
func String() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
