package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	miniocredentials "github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"
)

const s3CompatibleEstimate = 20 * time.Second

type s3Compatible struct {
	base
}

func newS3Compatible(b base, _ Deps) Adapter {
	return &s3Compatible{base: b}
}

func (a *s3Compatible) Deploy(ctx context.Context, req Request) (*Release, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}

	endpoint, secure, err := parseObjectStoreEndpoint(creds["S3_ENDPOINT"])
	if err != nil {
		return nil, err
	}
	region := a.optional("S3_REGION", awsDefaultRegion)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  miniocredentials.NewStaticV4(creds["S3_ACCESS_KEY"], creds["S3_SECRET_KEY"], ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: invalid object storage endpoint: %w", ErrConfiguration, err)
	}

	bucket := req.Slug
	logs := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check bucket: %w", ErrProvider, err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("%w: failed to create bucket: %w", ErrProvider, err)
		}
		logs = append(logs, "Created bucket "+bucket)
	}

	if err = client.SetBucketPolicy(ctx, bucket, fmt.Sprintf(publicReadTemplate, bucket)); err != nil {
		return nil, fmt.Errorf("%w: failed to set bucket policy: %w", ErrProvider, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(objectUploadLimit)
	for path, file := range req.Files {
		g.Go(func() error {
			if _, putErr := client.PutObject(gctx, bucket, path,
				bytes.NewReader(file.Content), int64(len(file.Content)),
				minio.PutObjectOptions{ContentType: file.ContentType},
			); putErr != nil {
				return fmt.Errorf("%w: failed to upload %s: %w", ErrProvider, path, putErr)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	logs = append(logs, fmt.Sprintf("Uploaded %d objects to %s/%s", len(req.Files), endpoint, bucket))

	publicURL := a.optional("S3_PUBLIC_URL", client.EndpointURL().String()+"/"+bucket)

	return &Release{
		URL:                  strings.TrimRight(publicURL, "/") + "/" + websiteIndexPage,
		ProviderDeploymentID: bucket,
		EstimatedTime:        s3CompatibleEstimate,
		Logs:                 logs,
	}, nil
}

// parseObjectStoreEndpoint accepts either host[:port] or a full URL.
func parseObjectStoreEndpoint(raw string) (string, bool, error) {
	if !strings.Contains(raw, "://") {
		return strings.TrimRight(raw, "/"), true, nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false, fmt.Errorf("%w: invalid S3_ENDPOINT %q", ErrConfiguration, raw)
	}

	return u.Host, u.Scheme == "https", nil
}
