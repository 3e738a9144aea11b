// Copyright (c) 2026 John Earle
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the subset of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader stores rendered reports in an S3 bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Uploader creates an uploader using the default AWS credential
// chain. An empty region falls back to AWS_REGION, then us-east-1.
func NewS3Uploader(ctx context.Context, bucket, region, prefix string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	return NewUploader(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

// NewUploader wraps an existing client.
func NewUploader(client ObjectPutter, bucket, prefix string) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Key returns the object key for a run's report with the given extension.
func (u *Uploader) Key(account, runID, ext string) string {
	name := runID + "." + strings.TrimPrefix(ext, ".")
	return path.Join(u.prefix, account, name)
}

// Upload writes data to the run's key and returns the key.
func (u *Uploader) Upload(ctx context.Context, account, runID, ext string, data []byte) (string, error) {
	key := u.Key(account, runID, ext)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(ext)),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", u.bucket, key, err)
	}
	return key, nil
}

func contentType(ext string) string {
	switch strings.TrimPrefix(ext, ".") {
	case "json":
		return "application/json"
	case "csv":
		return "text/csv"
	}
	return "application/octet-stream"
}
