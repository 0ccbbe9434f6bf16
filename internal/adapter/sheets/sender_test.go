package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pscheid92/huella/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSender_PostsJSON(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "huella/dev", r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(srv.URL, false, time.Second)
	err := s.Send(context.Background(), domain.Payload{"userId": "user_1", "type": "pre-survey", "sociedad": 4})

	require.NoError(t, err)
	assert.Equal(t, "user_1", got["userId"])
	assert.Equal(t, "pre-survey", got["type"])
	assert.Equal(t, 4.0, got["sociedad"])
}

func TestSender_IgnoresStatusWithoutAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewSender(srv.URL, false, time.Second).Send(context.Background(), domain.Payload{})
	assert.NoError(t, err)
}

func TestSender_RejectsNon2xxWithAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("try later"))
	}))
	defer srv.Close()

	err := NewSender(srv.URL, true, time.Second).Send(context.Background(), domain.Payload{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "try later")
}

func TestSender_TransportErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewSender(url, false, time.Second).Send(context.Background(), domain.Payload{})
	assert.Error(t, err)
}

func TestSender_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	err := NewSender(srv.URL, false, 20*time.Millisecond).Send(context.Background(), domain.Payload{})
	assert.Error(t, err)
}

func TestSender_UnencodablePayload(t *testing.T) {
	err := NewSender("http://127.0.0.1", false, time.Second).Send(context.Background(), domain.Payload{"bad": make(chan int)})
	assert.Error(t, err)
}
