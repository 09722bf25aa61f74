package minio

import (
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrPermission   = errors.New("permission denied")
	ErrUnavailable  = errors.New("storage unavailable")
)

// StorageError is returned by every MinIO operation.
type StorageError struct {
	Op     string
	Kind   error
	Detail string
	Err    error
}

func (e *StorageError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewInvalidInputError(detail string) *StorageError {
	return &StorageError{Op: "validate", Kind: ErrInvalidInput, Detail: detail}
}

// wrapSDKError classifies an SDK error by its S3 error code.
func wrapSDKError(op string, err error) error {
	if err == nil {
		return nil
	}

	se := &StorageError{Op: op, Kind: ErrUnavailable, Err: err}

	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return se
	}
	switch resp.Code {
	case "NoSuchBucket":
		se.Kind, se.Detail = ErrNotFound, "bucket "+resp.BucketName
	case "NoSuchKey":
		se.Kind, se.Detail = ErrNotFound, fmt.Sprintf("object %s/%s", resp.BucketName, resp.Key)
	case "AccessDenied":
		se.Kind = ErrPermission
	default:
		se.Detail = resp.Code
	}
	return se
}
