package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDefault 内嵌的默认配置，首次运行时写入磁盘
var configDefault string

var rootCmd = &cobra.Command{
	Use:   "fast-note-pad",
	Short: "Fast Note Pad, a personal note-taking service",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
