package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultManifestPrefix = "exports"

// S3Config locates export manifests. Keys are
// <ManifestPrefix>/user/<user>/project/<project>/<export>/manifest.jsonl.
type S3Config struct {
	BucketName     string
	Region         string
	ManifestPrefix string
}

func GetS3Config() (*S3Config, error) {
	bucketName := os.Getenv("BUCKET_NAME")
	if bucketName == "" {
		return nil, fmt.Errorf("BUCKET_NAME must be set")
	}

	region := getEnvDefault("REGION", os.Getenv("AWS_REGION"))
	if region == "" {
		return nil, fmt.Errorf("REGION or AWS_REGION must be set")
	}

	return &S3Config{
		BucketName:     bucketName,
		Region:         region,
		ManifestPrefix: strings.Trim(getEnvDefault("MANIFEST_PREFIX", defaultManifestPrefix), "/"),
	}, nil
}
