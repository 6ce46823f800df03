package adapter

import "errors"

var (
	ErrNotFound       = errors.New("object not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrUnauthorized   = errors.New("remote access denied")
	ErrRemote         = errors.New("remote storage error")
)
