package minio

import (
	"io"
	"time"
)

// ObjectInfo describes an object written to storage.
type ObjectInfo struct {
	BucketName   string            `json:"bucket_name"`
	ObjectName   string            `json:"object_name"`
	Size         int64             `json:"size"`
	ContentType  string            `json:"content_type"`
	ETag         string            `json:"etag"`
	LastModified time.Time         `json:"last_modified"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// UploadRequest contains the parameters for uploading an object.
type UploadRequest struct {
	BucketName  string
	ObjectName  string
	Reader      io.Reader
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// PresignedURLRequest contains the parameters for a presigned download URL.
type PresignedURLRequest struct {
	BucketName string
	ObjectName string
	Expiry     time.Duration
}

// PresignedURLResponse contains the generated presigned URL.
type PresignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
