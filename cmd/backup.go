package cmd

import (
	"context"
	"fmt"

	internalApp "github.com/haierkeys/fast-note-pad/internal/app"
	"github.com/haierkeys/fast-note-pad/internal/dao"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type backupFlags struct {
	config string // 配置文件路径
}

func init() {
	flags := new(backupFlags)

	var backupCommand = &cobra.Command{
		Use:   "backup [-c config_file]",
		Short: "Run one note backup to the configured storage // 立即执行一次笔记备份",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(flags.config)
			if err != nil {
				return err
			}

			cfg, _, err := internalApp.LoadConfig(configPath)
			if err != nil {
				return err
			}
			// 手动执行时忽略 enabled 开关，存储类型仍需合法
			cfg.Backup.Enabled = true
			if err := initStorageWithConfig(cfg); err != nil {
				return err
			}

			db, err := dao.NewDBEngineWithConfig(cfg.GetDatabaseConfig(), bootstrapLogger)
			if err != nil {
				return err
			}

			a, err := internalApp.NewApp(cfg, bootstrapLogger, db)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.BackupService.Run(context.Background())
			if err != nil {
				return err
			}

			bootstrapLogger.Info("backup finished",
				zap.String("stamp", result.Stamp),
				zap.Int("owners", result.Owners),
				zap.Int("notes", result.Notes))
			for _, key := range result.Keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	rootCmd.AddCommand(backupCommand)
	backupCommand.Flags().StringVarP(&flags.config, "config", "c", "", "config file")
}
