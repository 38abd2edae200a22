package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"cratefm/config"

	"github.com/minio/minio-go/v7"
)

// BucketStats 存储桶统计信息
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	LastModified time.Time
}

// ObjectInfo 文件信息
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ListBucketObjects 列出存储桶中的对象，可按前缀过滤
func ListBucketObjects(cfg *config.Config, prefix string) ([]ObjectInfo, *BucketStats, error) {
	client := GetMinioClient()
	if client == nil {
		return nil, nil, fmt.Errorf("MinIO 客户端未初始化")
	}

	ctx := context.Background()
	stats := &BucketStats{}
	var objects []ObjectInfo

	objectCh := client.ListObjects(ctx, cfg.MinioBucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			log.Printf("列出对象时出错: %v", object.Err)
			continue
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
		stats.TotalObjects++
		stats.TotalSize += object.Size
		if object.LastModified.After(stats.LastModified) {
			stats.LastModified = object.LastModified
		}
	}

	return objects, stats, nil
}
