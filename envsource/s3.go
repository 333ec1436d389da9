package envsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/apexfleet/botstrap/interfaces"
)

// S3Source reads a dotenv-format object from Amazon S3 or a compatible
// service. Credentials come from the standard AWS credential chain.
type S3Source struct {
	client      *s3.S3
	bucketName  string
	key         string
	log         *slog.Logger
	locationURI string
}

// NewS3Source creates a new S3 env source for the given bucket and object key.
// If endpoint is non-empty the client targets an S3-compatible service and
// uses path-style addressing.
func NewS3Source(bucketName, key, region, endpoint string, log *slog.Logger) (*S3Source, error) {
	cfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, key, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	return &S3Source{
		client:      s3.New(sess),
		bucketName:  bucketName,
		key:         key,
		log:         log,
		locationURI: uri,
	}, nil
}

// Fetch downloads and parses the dotenv object.
func (s *S3Source) Fetch(ctx context.Context) (map[string]string, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("fetching s3://%s/%s: %w", s.bucketName, s.key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", s.bucketName, s.key, err)
	}

	vars, err := parseDotenv(data)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", s.bucketName, s.key, err)
	}

	s.log.Debug("Loaded env object", "bucket", s.bucketName, "key", s.key, "vars", len(vars))
	return vars, nil
}

func (s *S3Source) Name() string {
	return "s3"
}

func (s *S3Source) LocationURI() string {
	return s.locationURI
}

// createS3Source creates an S3 source from a parsed URI.
// URI format: s3://bucket/key?region=eu-west-1[&endpoint=http://minio:9000]
func (f *Factory) createS3Source(u *url.URL) (interfaces.EnvSource, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: s3 source requires bucket and key", interfaces.ErrInvalidLocationURI)
	}

	region := u.Query().Get("region")
	if region == "" {
		return nil, fmt.Errorf("%w: s3 source requires a region parameter", interfaces.ErrInvalidLocationURI)
	}

	return NewS3Source(bucket, key, region, u.Query().Get("endpoint"), f.log)
}
