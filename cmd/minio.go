package cmd

import (
	"fmt"
	"log"
	"time"

	"cratefm/config"
	"cratefm/storage"

	"github.com/spf13/cobra"
)

var minioPrefix string

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "MinIO存储桶检查",
	Long:  `连接MinIO并列出存储桶中的资源文件，用于排查上传问题。`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("开始连接MinIO服务器...")

		cfg := config.Load()
		fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("无法连接到MinIO: %v", err)
		}
		fmt.Println("MinIO连接成功！")

		objects, stats, err := storage.ListBucketObjects(cfg, minioPrefix)
		if err != nil {
			log.Fatalf("列出文件失败: %v", err)
		}

		fmt.Printf("\n对象数量: %d, 总大小: %.2f MB\n",
			stats.TotalObjects, float64(stats.TotalSize)/1024/1024)
		for _, object := range objects {
			fmt.Printf("文件名: %s, 大小: %.2f KB, 最后修改时间: %s\n",
				object.Key,
				float64(object.Size)/1024,
				object.LastModified.Format(time.RFC3339))
		}

		fmt.Println("\nMinIO操作完成！")
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)

	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "按前缀过滤文件")

	minioCmd.Example = `  # 列出所有文件
  cratefm minio

  # 按前缀过滤文件
  cratefm minio -p "albums/"`
}
