package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Config описывает S3-совместимое хранилище (AWS, R2, MinIO).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	MaxUploadMB     int64
}

// ObjectAPI - подмножество клиента S3, которое использует хранилище.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3AvatarStorage хранит аватары в бакете S3.
type S3AvatarStorage struct {
	client         ObjectAPI
	bucket         string
	publicURL      string
	maxUploadBytes int64
}

// NewS3Client создаёт клиента со статическими ключами.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func NewS3AvatarStorage(client ObjectAPI, cfg S3Config) (*S3AvatarStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: не задан S3_BUCKET")
	}
	if cfg.PublicURL == "" {
		return nil, fmt.Errorf("storage: не задан S3_PUBLIC_URL")
	}
	return &S3AvatarStorage{
		client:         client,
		bucket:         cfg.Bucket,
		publicURL:      strings.TrimRight(cfg.PublicURL, "/"),
		maxUploadBytes: cfg.MaxUploadMB * 1024 * 1024,
	}, nil
}

func (s *S3AvatarStorage) Save(ctx context.Context, userID uuid.UUID, ext string, r io.Reader) (string, error) {
	data, err := readLimited(r, s.maxUploadBytes)
	if err != nil {
		return "", err
	}

	key := "avatars/" + objectName(userID, ext)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType := mime.TypeByExtension(sanitizeExt(ext)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("storage: не удалось загрузить объект %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}

func (s *S3AvatarStorage) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok || key == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: не удалось удалить объект %s: %w", key, err)
	}
	return nil
}
