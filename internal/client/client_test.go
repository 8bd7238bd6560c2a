package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNew_DefaultTimeout(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultTimeout, c.Timeout())
}

func TestNew_WithTimeout(t *testing.T) {
	c := New(WithTimeout(15 * time.Second))
	assert.Equal(t, 15*time.Second, c.Timeout())
}

func TestNew_WithHeaders(t *testing.T) {
	c := New(WithHeaders(map[string]string{
		"Content-Language": "en-au",
		"Accept-Charset":   "utf-8",
	}))
	assert.Equal(t, "en-au", c.headers["Content-Language"])
	assert.Equal(t, "utf-8", c.headers["Accept-Charset"])
}

func TestClient_Request_GET_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"freeTrialNumbers":[]}`))
	}))
	defer server.Close()

	c := New()
	resp, err := c.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.Equal(t, `{"freeTrialNumbers":[]}`, string(resp.Body))
}

func TestClient_Request_GET_Error(t *testing.T) {
	c := New(WithTimeout(100 * time.Millisecond))

	_, err := c.Request(context.Background(), http.MethodGet, "http://localhost:99999/nonexistent", nil, nil)
	require.Error(t, err)
}

func TestClient_Request_GET_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(WithTimeout(20 * time.Millisecond))
	_, err := c.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)
}

func TestClient_Request_POST(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := New()
	resp, err := c.Request(
		context.Background(),
		http.MethodPost,
		server.URL,
		map[string]string{"Content-Type": "application/json"},
		[]byte(`{"freeTrialNumbers":"0412345678"}`),
	)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, resp.OK())
}

func TestClient_Request_NotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	resp, err := New().Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)

	assert.False(t, resp.OK())
	assert.Equal(t, "401 Unauthorized", resp.Status)
	assert.Equal(t, `{"error":"invalid_client"}`, string(resp.Body))
}

func TestClient_DefaultHeadersDoNotOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "utf-8", r.Header.Get("Accept-Charset"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(WithHeaders(map[string]string{
		"Content-Type":   "application/json",
		"Accept-Charset": "utf-8",
	}))
	_, err := c.Request(
		context.Background(),
		http.MethodPost,
		server.URL,
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		[]byte("a=b"),
	)
	require.NoError(t, err)
}

func TestClient_WithBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(
		WithTimeout(10*time.Second),
		WithBearerToken(&oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"}),
	)
	resp, err := c.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10*time.Second, c.Timeout())
}

func TestClient_LatencyRecorded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := New().Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.GreaterOrEqual(t, resp.Latency, 10*time.Millisecond)
	assert.Empty(t, resp.Body)
}
