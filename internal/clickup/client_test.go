package clickup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendsRawToken(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("GET", "/team", 200, map[string]any{"teams": []Workspace{}})
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var out teamsResponse
	require.NoError(t, NewClient(srv.URL+"/", "pk_42").Get(context.Background(), "/team", &out))
	assert.Equal(t, []string{"pk_42"}, fake.auth)
}

func TestClient_APIError(t *testing.T) {
	fake := newFakeClickUp(t)
	fake.on("POST", "/list/L1/task", 400, map[string]any{"err": "Task name invalid", "ECODE": "INPUT_005"})
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := NewClient(srv.URL, "pk").Post(context.Background(), "/list/L1/task", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Equal(t, "Task name invalid", apiErr.Message)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestClient_RetriesGetOnServerError(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"spaces":[{"id":"1","name":"Tech"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "pk", WithMaxRetries(2), WithRetryBaseDelay(time.Millisecond))
	var out spacesResponse
	require.NoError(t, client.Get(context.Background(), "/team/1/space", &out))
	assert.Equal(t, int32(3), hits.Load())
	assert.Len(t, out.Spaces, 1)
}

func TestClient_NeverRetriesPost(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "pk", WithMaxRetries(3), WithRetryBaseDelay(time.Millisecond))
	err := client.Post(context.Background(), "/list/1/task", map[string]string{"name": "x"}, nil)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url, "pk", WithMaxRetries(0)).Get(context.Background(), "/team", nil)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}
