package cmd

import (
	"fmt"

	internalApp "github.com/haierkeys/fast-note-pad/internal/app"
	pkgapp "github.com/haierkeys/fast-note-pad/pkg/app"
	"github.com/haierkeys/fast-note-pad/pkg/util"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type tokenFlags struct {
	config string // 配置文件路径
	uid    string // 笔记所有者 ID
	expiry string // 有效期，为空时使用配置文件中的 security.token-expiry
}

func init() {
	flags := new(tokenFlags)

	var tokenCommand = &cobra.Command{
		Use:   "token --uid <owner> [--expiry 24h] [-c config_file]",
		Short: "Issue an auth token for an owner id with the configured key // 使用配置的密钥为用户签发 Token",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(flags.config)
			if err != nil {
				return err
			}

			cfg, _, err := internalApp.LoadConfig(configPath)
			if err != nil {
				return err
			}

			tokenCfg := cfg.GetTokenConfig()
			if flags.expiry != "" {
				d, err := util.ParseDuration(flags.expiry)
				if err != nil {
					return fmt.Errorf("invalid expiry %q: %w", flags.expiry, err)
				}
				tokenCfg.Expiry = d
			}

			token, err := pkgapp.NewTokenManager(tokenCfg).Generate(flags.uid, "")
			if err != nil {
				return err
			}

			bootstrapLogger.Debug("token issued", zap.String("uid", flags.uid), zap.Duration("expiry", tokenCfg.Expiry))
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	rootCmd.AddCommand(tokenCommand)
	fs := tokenCommand.Flags()
	fs.StringVarP(&flags.config, "config", "c", "", "config file")
	fs.StringVarP(&flags.uid, "uid", "u", "", "owner id carried by the token")
	fs.StringVarP(&flags.expiry, "expiry", "e", "", "token lifetime, e.g. 24h or 7d")
	_ = tokenCommand.MarkFlagRequired("uid")
}
