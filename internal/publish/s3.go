// Package publish uploads project artifacts to S3-compatible object storage
// and hands back a shareable link.
package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/cyberdoom/internal/config"
	"github.com/dmitrijs2005/cyberdoom/internal/models"
)

// linkValidity is how long a published link stays fetchable.
const linkValidity = 24 * time.Hour

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Publisher uploads a project's HTML document as a static site object.
type Publisher struct {
	config *config.Config
}

func NewPublisher(cfg *config.Config) *Publisher {
	return &Publisher{config: cfg}
}

// StorageKey is the object key a project publishes to. One key per project
// and branch, so republishing overwrites the previous revision.
func StorageKey(project *models.Project) string {
	return fmt.Sprintf("projects/%s/%s/index.html", project.ID, project.Branch)
}

func (p *Publisher) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(p.config.PublishRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.PublishAccessKey,
			p.config.PublishSecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(p.config.PublishBaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Publish uploads the project's current document and returns a presigned GET
// URL for it.
func (p *Publisher) Publish(ctx context.Context, project *models.Project) (string, error) {
	client, err := p.getClient()
	if err != nil {
		return "", err
	}

	bucket := p.config.PublishBucket
	key := StorageKey(project)
	contentType := "text/html; charset=utf-8"

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        strings.NewReader(project.HTML),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(linkValidity))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
