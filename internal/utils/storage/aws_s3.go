package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"foodflow/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const InventoryImageFolder = "inventory_images"

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/webp", "image/gif", "image/heic"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string

		// UploadImage stores an inventory image under the user's folder with
		// a generated name and returns its public URL.
		UploadImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error)
		// DeleteImage removes the object a public URL points at. Links that
		// do not belong to the bucket are ignored.
		DeleteImage(ctx context.Context, link string) error
	}

	awsS3 struct {
		client   *s3.Client
		bucket   string
		region   string
		endpoint string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")

	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to load aws config: %v", err))
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:   client,
		bucket:   utils.GetConfig("AWS_S3_BUCKET"),
		region:   region,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mime, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	contentType := mime.String()
	if len(allowed) > 0 && !mimetype.EqualsAny(contentType, allowed...) {
		return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, contentType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = mime.Extension()
	}
	objectKey := path.Join(folder, fileName+ext)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	if a.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", a.endpoint, a.bucket, objectKey)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := a.GetPublicLinkKey("")
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (a *awsS3) UploadImage(ctx context.Context, userID string, image *multipart.FileHeader) (string, error) {
	if image == nil {
		return "", ErrEmptyFile
	}
	folder := path.Join(InventoryImageFolder, userID)

	// fresh key per upload; client file names repeat across items
	objectKey, err := a.UploadFile(ctx, uuid.NewString(), image, folder, AllowImage...)
	if err != nil {
		return "", err
	}
	return a.GetPublicLinkKey(objectKey), nil
}

func (a *awsS3) DeleteImage(ctx context.Context, link string) error {
	objectKey := a.GetObjectKeyFromLink(link)
	if objectKey == "" {
		return nil
	}
	return a.DeleteFile(ctx, objectKey)
}
