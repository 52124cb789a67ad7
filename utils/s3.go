package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func InitS3() {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if os.Getenv("S3_BUCKET") == "" {
		log.Println("S3_BUCKET not set, meal photos will be stored locally")
		return
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}
	s3Client = s3.NewFromConfig(cfg)
}

// UploadJPEG stores an encoded JPEG under keyPrefix and returns its URL.
// With no bucket configured it falls back to the local media directory so
// a device install works without AWS credentials.
func UploadJPEG(data []byte, keyPrefix string) (string, error) {
	key := fmt.Sprintf("%s/%d.jpg", keyPrefix, time.Now().UnixNano())

	if s3Client == nil {
		dir := os.Getenv("MEDIA_DIR")
		if dir == "" {
			dir = "media"
		}
		path := filepath.Join(dir, filepath.FromSlash(key))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("create media directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write media file: %w", err)
		}
		return "/" + filepath.ToSlash(path), nil
	}

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	base := os.Getenv("CLOUDFRONT_URL")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", os.Getenv("S3_BUCKET"))
	}
	return fmt.Sprintf("%s/%s", base, key), nil
}
