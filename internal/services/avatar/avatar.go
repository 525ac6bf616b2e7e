// Package services загружает аватары пользователей в S3-совместимое
// объектное хранилище и выдаёт URL доставки фиксированного размера.
package services

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/andrusoleg/contacts-api/internal/config"
)

// UploadService загружает файлы в бакет объектного хранилища.
type UploadService struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewUploadService создает клиент объектного хранилища из конфигурации.
// Работает с MinIO и любым другим S3-совместимым хранилищем через BaseEndpoint.
func NewUploadService(ctx context.Context, cfg config.S3) (*UploadService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &UploadService{
		client:        client,
		bucket:        cfg.S3Bucket,
		publicBaseURL: cfg.S3PublicBaseURL,
	}, nil
}

// Upload сохраняет файл под детерминированным ключом avatars/<name>,
// перезаписывая предыдущую загрузку, и возвращает URL доставки
// с фиксированной обрезкой 250x250.
func (s *UploadService) Upload(ctx context.Context, file io.Reader, name string) (string, error) {
	const op = "avatar.Upload"

	key := fmt.Sprintf("avatars/%s", name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("%s/%s/%s?width=250&height=250&fit=crop", s.publicBaseURL, s.bucket, key), nil
}
