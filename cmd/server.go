package cmd

import (
	"cratefm/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动目录管理服务",
	Long:  `启动媒体目录的管理端HTTP服务，处理专辑与歌曲的写入操作`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
