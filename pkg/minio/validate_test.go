package minio

import (
	"errors"
	"strings"
	"testing"
	"time"

	"alert-srv/config"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{"valid", "alert-reports", false},
		{"too short", "ab", true},
		{"uppercase", "Alert-Reports", true},
		{"double hyphen", "alert--reports", true},
		{"leading hyphen", "-alert", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBucketName(tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUploadRequest(t *testing.T) {
	valid := func() *UploadRequest {
		return &UploadRequest{
			BucketName:  "alert-reports",
			ObjectName:  "t1/cash-flow.json",
			Reader:      strings.NewReader("{}"),
			Size:        2,
			ContentType: "application/json",
		}
	}

	assert.NoError(t, validateUploadRequest(valid()))

	req := valid()
	req.ObjectName = "/absolute"
	assert.Error(t, validateUploadRequest(req))

	req = valid()
	req.Size = 0
	assert.Error(t, validateUploadRequest(req))

	assert.Error(t, validateUploadRequest(nil))
}

func TestValidatePresignedURLRequest(t *testing.T) {
	req := &PresignedURLRequest{BucketName: "alert-reports", ObjectName: "r.json", Expiry: time.Hour}
	assert.NoError(t, validatePresignedURLRequest(req))

	req.Expiry = 8 * 24 * time.Hour
	assert.Error(t, validatePresignedURLRequest(req))
}

func TestValidateConfigAddsDefaultPort(t *testing.T) {
	cfg := &config.MinIOConfig{Endpoint: "minio", AccessKey: "a", SecretKey: "s", Bucket: "alert-reports"}
	assert.NoError(t, validateConfig(cfg))
	assert.Equal(t, "minio:9000", cfg.Endpoint)

	assert.Error(t, validateConfig(&config.MinIOConfig{}))
}

func TestStorageErrorKinds(t *testing.T) {
	err := validateBucketName("x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "validate: invalid input")

	sdkErr := minio.ErrorResponse{Code: "NoSuchKey", BucketName: "reports", Key: "t1/cash.csv"}
	wrapped := wrapSDKError("upload_file", sdkErr)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "reports/t1/cash.csv")

	assert.ErrorIs(t, wrapSDKError("connect", minio.ErrorResponse{Code: "AccessDenied"}), ErrPermission)
	assert.ErrorIs(t, wrapSDKError("connect", errors.New("dial tcp: refused")), ErrUnavailable)
	assert.NoError(t, wrapSDKError("connect", nil))
}
