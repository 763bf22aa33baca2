// Package cli 实现 chatdock 命令行：默认启动桌面外壳，子命令管理凭证、生成图标
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chatdock/internal/app"
	"chatdock/internal/config"
)

// runShell 启动桌面外壳，测试中替换
var runShell = app.Run

type options struct {
	configPath string
}

func (o *options) path() string {
	if o.configPath == "" {
		return config.DefaultConfigPath()
	}
	return o.configPath
}

// NewRootCmd 创建命令树
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "chatdock",
		Short: "Gemini 与 Poe 的托盘桌面外壳",
		Long: `chatdock 把 Gemini 和 Poe 网页版托管在常驻托盘的桌面窗口中，
窗口获得焦点后自动填写保存的账户信息。

不带子命令运行时启动桌面外壳。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts.path())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "配置文件路径（默认为用户配置目录下的 chatdock/config.yaml）")

	root.AddCommand(newCredentialsCmd(opts))
	root.AddCommand(newIconsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute 运行命令行，错误输出到标准错误
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", styleError.Render("Error:"), err)
	}
	return err
}
