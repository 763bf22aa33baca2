package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chatdock/internal/config"
	"chatdock/internal/credentials"
	"chatdock/internal/service"
)

func newCredentialsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "credentials",
		Aliases: []string{"creds"},
		Short:   "管理自动登录使用的账户凭证",
	}
	cmd.AddCommand(
		newCredentialsSetCmd(opts),
		newCredentialsGetCmd(opts),
		newCredentialsDeleteCmd(opts),
		newCredentialsListCmd(opts),
	)
	return cmd
}

func openStore(opts *options) (credentials.Store, error) {
	cfg, err := config.Load(opts.path())
	if err != nil {
		return nil, err
	}
	return credentials.Open(cfg.Credentials.Backend, cfg.CredentialsDir())
}

func newCredentialsSetCmd(opts *options) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "set <service> <username>",
		Short: "保存账户，密码未通过 --password 给出时从标准输入读取一行",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.Parse(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("password") {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("未提供密码")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			store, err := openStore(opts)
			if err != nil {
				return err
			}
			if err := store.Save(svc, args[1], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("✓"), styleValue.Render(svc.String()+" 凭证已保存"))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "密码")
	return cmd
}

func newCredentialsGetCmd(opts *options) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "get <service>",
		Short: "显示保存的账户",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.Parse(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			creds, found, err := store.Get(svc)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("%s 没有保存的凭证", svc)
			}
			printCredentials(cmd, creds, show)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "显示明文密码")
	return cmd
}

func newCredentialsDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <service>",
		Aliases: []string{"rm"},
		Short:   "删除保存的账户",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service.Parse(args[0])
			if err != nil {
				return err
			}
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			if err := store.Delete(svc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleSuccess.Render("✓"), styleValue.Render(svc.String()+" 凭证已删除"))
			return nil
		},
	}
}

func newCredentialsListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "列出所有保存的账户",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(opts)
			if err != nil {
				return err
			}
			all, err := store.List()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleHint.Render("没有保存的凭证"))
				return nil
			}
			for _, c := range all {
				printCredentials(cmd, c, false)
			}
			return nil
		},
	}
}

func printCredentials(cmd *cobra.Command, c credentials.Credentials, show bool) {
	password := mask(c.Password)
	if show {
		password = c.Password
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", styleBrand.Render(c.Service))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Username"), styleValue.Render(c.Username))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Password"), styleValue.Render(password))
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}
