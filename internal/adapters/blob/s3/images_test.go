package s3

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.test/pets/1/a.png",
		publicURL(Config{PublicBaseURL: "https://cdn.test", Bucket: "b"}, "pets/1/a.png"))
	assert.Equal(t, "http://minio:9000/pets-bucket/pets/1/a.png",
		publicURL(Config{Endpoint: "http://minio:9000", Bucket: "pets-bucket"}, "pets/1/a.png"))
	assert.Equal(t, "https://b.s3.ap-southeast-2.amazonaws.com/k.jpg",
		publicURL(Config{Bucket: "b", Region: "ap-southeast-2"}, "k.jpg"))
}

func TestUpload_PathStyleAgainstCompatibleEndpoint(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewImageStore(context.Background(), Config{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		Bucket:          "pets",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
	})
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "pets/3/x.png", bytes.NewReader([]byte("img")), "image/png")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/pets/pets/3/x.png", url)
	require.NotEmpty(t, paths)
	assert.Equal(t, "PUT /pets/pets/3/x.png", paths[0])
}
