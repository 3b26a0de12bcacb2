package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/southpawriter02/rune-rust-sub041/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func byPrefix(prefix string) any {
	return mock.MatchedBy(func(opts minio.ListObjectsOptions) bool { return opts.Prefix == prefix })
}

func TestCheckDocuments(t *testing.T) {
	names := []string{"attributes.json", "realms.json"}

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(false, nil)

		_, err := CheckDocuments(context.Background(), client, "rules", "rules/", names)
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(false, assert.AnError)

		_, err := CheckDocuments(context.Background(), client, "rules", "rules/", names)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("Partial", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		client.On("ListObjects", mock.Anything, "rules", byPrefix("rules/attributes.json")).Return(mocks.Listing("rules/attributes.json"))
		// A longer key sharing the prefix does not count.
		client.On("ListObjects", mock.Anything, "rules", byPrefix("rules/realms.json")).Return(mocks.Listing("rules/realms.json.bak"))

		missing, err := CheckDocuments(context.Background(), client, "rules", "rules/", names)
		require.NoError(t, err)
		assert.Equal(t, []string{"realms.json"}, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		for _, n := range names {
			client.On("ListObjects", mock.Anything, "rules", byPrefix(n)).Return(mocks.Listing(n))
		}

		missing, err := CheckDocuments(context.Background(), client, "rules", "", names)
		require.NoError(t, err)
		assert.NotNil(t, missing)
		assert.Empty(t, missing)
	})
}

func TestFixDocuments(t *testing.T) {
	read := func(name string) ([]byte, error) { return []byte(`{"version": "1.0.0"}`), nil }

	t.Run("Creates Bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "rules", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "rules", "rules/realms.json", mock.Anything, int64(20), mock.Anything).Return(minio.UploadInfo{}, nil)

		err := FixDocuments(context.Background(), client, "rules", "rules/", zap.NewNop(), []string{"realms.json"}, read)
		require.NoError(t, err)
		client.AssertExpectations(t)
	})

	t.Run("Upload Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		client.On("PutObject", mock.Anything, "rules", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

		err := FixDocuments(context.Background(), client, "rules", "", zap.NewNop(), []string{"realms.json", "lineages.json"}, read)
		assert.ErrorIs(t, err, assert.AnError)
		client.AssertNumberOfCalls(t, "PutObject", 1)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Read Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rules").Return(true, nil)
		missingDoc := errors.New("no such document")

		err := FixDocuments(context.Background(), client, "rules", "", zap.NewNop(), []string{"spells.json"},
			func(string) ([]byte, error) { return nil, missingDoc })
		assert.ErrorIs(t, err, missingDoc)
	})
}
