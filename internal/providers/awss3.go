package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/errgroup"
)

const (
	awsS3Estimate      = 30 * time.Second
	awsDefaultRegion   = "us-east-1"
	objectUploadLimit  = 8
	websiteIndexPage   = "index.html"
	websiteErrorPage   = "404.html"
	publicReadTemplate = `{"Version":"2012-10-17","Statement":[{"Sid":"PublicRead","Effect":"Allow",` +
		`"Principal":"*","Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`
)

type awsS3 struct {
	base
}

func newAWSS3(b base, _ Deps) Adapter {
	return &awsS3{base: b}
}

func (a *awsS3) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	region := a.optional("AWS_REGION", awsDefaultRegion)

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(awscredentials.NewStaticCredentialsProvider(
			creds["AWS_ACCESS_KEY_ID"], creds["AWS_SECRET_ACCESS_KEY"], a.optional("AWS_SESSION_TOKEN", ""),
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load aws config: %w", ErrConfiguration, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if a.overridden {
			o.BaseEndpoint = aws.String(a.endpoint)
			o.UsePathStyle = true
		}
	})

	bucket := req.Slug
	logs := []string{}

	created, err := a.ensureBucket(ctx, client, bucket, region)
	if err != nil {
		return nil, err
	}
	if created {
		logs = append(logs, "Created bucket "+bucket)
	}

	if _, err = client.DeletePublicAccessBlock(ctx, &s3.DeletePublicAccessBlockInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to allow public access: %w", ErrProvider, err)
	}

	if _, err = client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(fmt.Sprintf(publicReadTemplate, bucket)),
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to set bucket policy: %w", ErrProvider, err)
	}

	if _, err = client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: aws.String(bucket),
		WebsiteConfiguration: &types.WebsiteConfiguration{
			IndexDocument: &types.IndexDocument{Suffix: aws.String(websiteIndexPage)},
			ErrorDocument: &types.ErrorDocument{Key: aws.String(websiteErrorPage)},
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to configure website hosting: %w", ErrProvider, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(objectUploadLimit)
	for path, file := range req.Files {
		g.Go(func() error {
			if _, putErr := client.PutObject(gctx, &s3.PutObjectInput{
				Bucket:        aws.String(bucket),
				Key:           aws.String(path),
				Body:          bytes.NewReader(file.Content),
				ContentLength: aws.Int64(int64(len(file.Content))),
				ContentType:   aws.String(file.ContentType),
			}); putErr != nil {
				return fmt.Errorf("%w: failed to upload %s: %w", ErrProvider, path, putErr)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	logs = append(logs, fmt.Sprintf("Uploaded %d objects to s3://%s", len(req.Files), bucket))

	return &Release{
		URL:                  fmt.Sprintf("http://%s.s3-website-%s.amazonaws.com", bucket, region),
		ProviderDeploymentID: bucket,
		EstimatedTime:        awsS3Estimate,
		Logs:                 logs,
	}, nil
}

func (a *awsS3) ensureBucket(ctx context.Context, client *s3.Client, bucket, region string) (bool, error) {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if region != awsDefaultRegion {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		}
	}

	_, err := client.CreateBucket(ctx, input)
	if err == nil {
		return true, nil
	}

	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return false, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "BucketAlreadyExists" {
		return false, fmt.Errorf("%w: bucket name %s is taken by another account", ErrProvider, bucket)
	}

	return false, fmt.Errorf("%w: failed to create bucket: %w", ErrProvider, err)
}
