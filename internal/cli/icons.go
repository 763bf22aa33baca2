package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatdock/internal/icons"
)

func newIconsCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "生成打包用的 PNG 与 ICO 图标",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			written, err := icons.WriteAll(out)
			if err != nil {
				return err
			}
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("✓"), styleValue.Render(path))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "icons", "输出目录")
	return cmd
}
