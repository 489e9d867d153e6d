package embedder

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedChunks(t *testing.T) {
	var gotAuth string
	var gotReq embedReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2}},
				{"embedding": []float32{0.3, 0.4}},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k-123", "embed-small")
	vecs, err := c.EmbedChunks([]string{"rotate fungicides", "scout weekly"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, []float32{0.1, 0.2}, vecs[0])
	assert.Equal(t, []float32{0.3, 0.4}, vecs[1])

	assert.Equal(t, "Bearer k-123", gotAuth)
	assert.Equal(t, "embed-small", gotReq.Model)
	assert.Equal(t, []string{"rotate fungicides", "scout weekly"}, gotReq.Input)
}

func TestEmbedChunksCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{0.1}}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m")
	_, err := c.EmbedChunks([]string{"a", "b"})
	assert.Error(t, err)
}

func TestEmbedChunksErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "m")
	_, err := c.EmbedChunks([]string{"a"})
	assert.Error(t, err)
}

func TestEmbedChunksUnconfigured(t *testing.T) {
	c := New("", "", "")
	_, err := c.EmbedChunks([]string{"a"})
	assert.Error(t, err)
}

func TestPackUnpack(t *testing.T) {
	v := []float32{0, -1.5, 3.25, 1e-7}
	assert.Equal(t, v, Unpack(Pack(v)))
	assert.Len(t, Pack(v), 16)

	assert.Empty(t, Unpack(nil))
	// trailing partial float is dropped
	assert.Len(t, Unpack(make([]byte, 9)), 2)
}
