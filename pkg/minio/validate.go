package minio

import (
	"strings"
	"time"

	"alert-srv/config"
)

const (
	maxPresignExpiry = 7 * 24 * time.Hour
	maxObjectSize    = 5 * 1024 * 1024 * 1024
)

func validateConfig(cfg *config.MinIOConfig) error {
	if cfg == nil {
		return NewInvalidInputError("config is required")
	}
	if cfg.Endpoint == "" {
		return NewInvalidInputError("endpoint is required")
	}
	if cfg.AccessKey == "" {
		return NewInvalidInputError("access key is required")
	}
	if cfg.SecretKey == "" {
		return NewInvalidInputError("secret key is required")
	}
	if cfg.Bucket == "" {
		return NewInvalidInputError("bucket is required")
	}

	if !strings.Contains(cfg.Endpoint, ":") {
		cfg.Endpoint = cfg.Endpoint + ":9000"
	}
	return nil
}

func validateUploadRequest(req *UploadRequest) error {
	if req == nil {
		return NewInvalidInputError("request is required")
	}
	if err := validateBucketName(req.BucketName); err != nil {
		return err
	}
	if req.ObjectName == "" {
		return NewInvalidInputError("object name is required")
	}
	if strings.HasPrefix(req.ObjectName, "/") || strings.HasSuffix(req.ObjectName, "/") {
		return NewInvalidInputError("object name cannot start or end with '/'")
	}
	if req.Reader == nil {
		return NewInvalidInputError("reader is required")
	}
	if req.Size <= 0 {
		return NewInvalidInputError("size must be positive")
	}
	if req.Size > maxObjectSize {
		return NewInvalidInputError("file size cannot exceed 5GB")
	}
	if req.ContentType == "" {
		return NewInvalidInputError("content type is required")
	}
	return nil
}

func validatePresignedURLRequest(req *PresignedURLRequest) error {
	if req == nil {
		return NewInvalidInputError("request is required")
	}
	if err := validateBucketName(req.BucketName); err != nil {
		return err
	}
	if req.ObjectName == "" {
		return NewInvalidInputError("object name is required")
	}
	if req.Expiry <= 0 {
		return NewInvalidInputError("expiry must be positive")
	}
	if req.Expiry > maxPresignExpiry {
		return NewInvalidInputError("expiry cannot exceed 7 days")
	}
	return nil
}

// validateBucketName applies the S3 bucket naming rules.
func validateBucketName(bucketName string) error {
	if len(bucketName) < 3 || len(bucketName) > 63 {
		return NewInvalidInputError("bucket name must be between 3 and 63 characters")
	}
	for _, char := range bucketName {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') || char == '-') {
			return NewInvalidInputError("bucket name can only contain lowercase letters, numbers, and hyphens")
		}
	}
	if strings.Contains(bucketName, "--") {
		return NewInvalidInputError("bucket name cannot contain consecutive hyphens")
	}
	if strings.HasPrefix(bucketName, "-") || strings.HasSuffix(bucketName, "-") {
		return NewInvalidInputError("bucket name cannot start or end with hyphen")
	}
	return nil
}
