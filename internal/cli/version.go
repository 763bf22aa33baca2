package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"chatdock/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "显示版本信息",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s %s\n", styleBrand.Render("chatdock"), styleVersion.Render(version.Version))
			fmt.Fprintf(out, "    %s  %s\n", styleLabel.Render("Commit"), styleValue.Render(version.Commit))
			fmt.Fprintf(out, "    %s   %s\n", styleLabel.Render("Built"), styleValue.Render(version.BuildDate))
			fmt.Fprintf(out, "    %s %s\n", styleLabel.Render("OS/Arch"), styleValue.Render(runtime.GOOS+"/"+runtime.GOARCH))
			fmt.Fprintf(out, "    %s      %s\n", styleLabel.Render("Go"), styleValue.Render(runtime.Version()))
		},
	}
}
