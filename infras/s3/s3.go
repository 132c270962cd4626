package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"campusroom/config"
	"campusroom/infras/otel"
	"campusroom/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "s3.key"
	otelAttrBucket    = "s3.bucket"
	sniffLength       = 512
)

// S3 stores public objects in the configured bucket. Keys are slash
// separated and never start with a slash.
type S3 interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (key string, ok bool)
}

// ObjectKey joins a directory and a file name into an object key.
func ObjectKey(directory, fileName string) string {
	return strings.TrimPrefix(path.Join(directory, fileName), "/")
}

type s3Impl struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

// Upload buffers body and puts it under key. An empty contentType is sniffed
// from the first bytes.
func (svc *s3Impl) Upload(ctx context.Context, key string, body io.Reader, contentType string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	data, err := io.ReadAll(body)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read object body: %w", err)
	}

	if contentType == constant.Empty {
		contentType = http.DetectContentType(data[:min(len(data), sniffLength)])
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("failed to upload object: %w", err)
	}

	return svc.publicDomain + "/" + key, nil
}

func (svc *s3Impl) Delete(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	}); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete object")

		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// KeyFromURL reverses Upload. URLs outside the public domain are not ours.
func (svc *s3Impl) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, svc.publicDomain+"/")
	if !ok || key == constant.Empty {
		return constant.Empty, false
	}

	return key, true
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Config := config.External.S3

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3Config.AccessKeyID, s3Config.SecretAccessKey, "")),
		awsConfig.WithRegion("auto"),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Config.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(s3Config.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client:       client,
		bucket:       s3Config.BucketName,
		publicDomain: strings.TrimSuffix(s3Config.PublicDomain, "/"),
		otel:         otel,
	}
}
