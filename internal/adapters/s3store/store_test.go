package s3store

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rushil0704/auth-client-1/config"
)

func TestProgressReader_ReportsRunningTotal(t *testing.T) {
	t.Parallel()

	var seen []int64
	pr := &progressReader{
		r:  bytes.NewReader(make([]byte, 10)),
		fn: func(sent int64) { seen = append(seen, sent) },
	}

	buf := make([]byte, 4)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, []int64{4, 8, 10}, seen)
}

func TestNew_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Options{Config: config.StorageConfig{Region: "us-east-1"}})
	assert.Error(t, err)
}

func TestPresignGet_OneHourPathStyle(t *testing.T) {
	t.Parallel()

	store, err := New(context.Background(), Options{Config: config.StorageConfig{
		Endpoint:        "http://minio.local:9000",
		Region:          "us-east-1",
		Bucket:          "images",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		UsePathStyle:    true,
		PartSize:        5 * 1024 * 1024,
	}})
	require.NoError(t, err)

	raw, err := store.PresignGet(context.Background(), "cat.png", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "minio.local:9000", u.Host)
	assert.Equal(t, "/images/cat.png", u.Path)
	assert.Equal(t, "3600", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}
