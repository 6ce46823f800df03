package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestMapS3Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no such key", err: &smithy.GenericAPIError{Code: "NoSuchKey"}, want: ErrNotFound},
		{name: "not found", err: &smithy.GenericAPIError{Code: "NotFound"}, want: ErrNotFound},
		{name: "no such bucket", err: &smithy.GenericAPIError{Code: "NoSuchBucket"}, want: ErrBucketNotFound},
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: ErrUnauthorized},
		{name: "bad signature", err: &smithy.GenericAPIError{Code: "SignatureDoesNotMatch"}, want: ErrUnauthorized},
		{name: "other api error", err: &smithy.GenericAPIError{Code: "SlowDown"}, want: ErrRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapS3Error(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestMapS3Error_PassesThroughNonAPIErrors(t *testing.T) {
	assert.NoError(t, mapS3Error(nil))
	assert.Equal(t, context.Canceled, mapS3Error(context.Canceled))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, mapS3Error(plain))
}
