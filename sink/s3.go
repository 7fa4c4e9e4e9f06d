// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type S3Filesystem struct {
	svc          s3iface.S3API
	staticBucket string
}

func NewS3Filesystem(session *session.Session, stage string) (*S3Filesystem, error) {
	return NewS3FilesystemFromIface(s3.New(session), stage), nil
}

// NewS3FilesystemFromIface allows substituting the S3 client.
func NewS3FilesystemFromIface(svc s3iface.S3API, stage string) *S3Filesystem {
	return &S3Filesystem{
		svc:          svc,
		staticBucket: "tilegen-" + stage + "-static",
	}
}

// Bucket is the name of the bucket uploads go to.
func (s3Filesystem *S3Filesystem) Bucket() string {
	return s3Filesystem.staticBucket
}

var s3ContentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
}

func contentType(filename string) *string {
	// Patch S3's limited vocabulary of default content types
	for ext, mime := range s3ContentTypes {
		if strings.HasSuffix(filename, ext) {
			mime := mime
			return &mime
		}
	}
	return nil
}

func (s3Filesystem *S3Filesystem) UploadStaticFile(filename string, secondsCache int, data []byte) error {
	req, _ := s3Filesystem.svc.PutObjectRequest(&s3.PutObjectInput{
		Bucket:       aws.String(s3Filesystem.staticBucket),
		Key:          aws.String(filename),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String(fmt.Sprintf("no-transform, public, max-age=%d", secondsCache)),
		ContentType:  contentType(filename),
	})
	return req.Send()
}
