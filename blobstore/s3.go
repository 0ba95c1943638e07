/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package blobstore

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Store keeps blobs as objects in an Amazon S3 bucket.
type S3Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is initialized in Init() with the default Config, but callers
	// can optionally override it with their own s3 client.
	Client *s3.Client

	bucketName string

	// prefix is prepended to every object key, e.g. "chesstourney/"
	prefix string

	// gzip indicates whether objects are gzipped in Put and gunzipped in
	// Get. If true, object keys carry a ".gz" suffix.
	gzip bool
}

// NewS3Store returns a store for bucketName. Callers must invoke Init() on
// the returned store before use.
func NewS3Store(bucketName string, prefix string, gzipIn bool) *S3Store {
	return &S3Store{
		bucketName: bucketName,
		prefix:     prefix,
		gzip:       gzipIn,
	}
}

// Init loads the default AWS configuration sources:
// * Environment Variables (e.g. AWS_ACCESS_KEY_ID and AWS_SECRET_KEY)
// * Shared Configuration and Shared Credentials files.
func (s *S3Store) Init(ctx context.Context) error {
	if s.bucketName == "" {
		return fmt.Errorf("blobstore.s3.init: bucket name must be set")
	}
	var err error
	s.Config, err = config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("blobstore.s3.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config)

	// Permission check: verify bucket exists and is accessible
	if _, err = s.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("blobstore.s3.init: head bucket failed for %s: %w",
			s.bucketName, err)
	}

	// Permission check: verify ability to list objects
	if _, err = s.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucketName),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("blobstore.s3.init: list objects failed for %s: %w",
			s.bucketName, err)
	}

	return nil
}

func (s *S3Store) objectKey(key string) string {
	objKey := s.prefix + key
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}

func isNoSuchKey(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) &&
		(apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound")
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	}

	resp, err := s.Client.GetObject(ctx, input)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blobstore.s3.get: failed to get object %v/%v: %w",
			*input.Bucket, *input.Key, err)
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("blobstore.s3.get: failed to open compressed object %v/%v: %w",
				*input.Bucket, *input.Key, err)
		}
		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("blobstore.s3.get: failed to read object %v/%v: %w",
			*input.Bucket, *input.Key, err)
	}

	return data, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}

	if s.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("blobstore.s3.put: failed to gzip data for %v: %w",
				key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("blobstore.s3.put: failed to close gzip writer for %v: %w",
				key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("blobstore.s3.put: put failed for %v/%v: %w",
			*input.Bucket, *input.Key, err)
	}

	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("blobstore.s3.delete: delete failed for %v: %w", key,
			err)
	}

	return nil
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(s.prefix + prefix),
	})

	keys := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("blobstore.s3.list: %w", err)
		}
		for _, obj := range page.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if s.gzip {
				if !strings.HasSuffix(key, ".gz") {
					log.Printf("blobstore.s3.list: skipping uncompressed object %v",
						key)
					continue
				}
				key = strings.TrimSuffix(key, ".gz")
			}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	return keys, nil
}
