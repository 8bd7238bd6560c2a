package telstra

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testToken = &oauth2.Token{AccessToken: "abc123", TokenType: "Bearer"}

func assertProtocolHeaders(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, "3.1.0", r.Header.Get("Telstra-api-version"))
	assert.Equal(t, "en-au", r.Header.Get("Content-Language"))
	assert.Equal(t, "application/json", r.Header.Get("Accept"))
	assert.Equal(t, "utf-8", r.Header.Get("Accept-Charset"))
	assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
}

func TestListFreeTrialNumbers_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, FreeTrialNumbersPath, r.URL.Path)
		assertProtocolHeaders(t, r)
		w.Write([]byte(`{"freeTrialNumbers":["0412345678"]}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), testToken)
	result, err := c.ListFreeTrialNumbers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeListed, result.Outcome)
	assert.Equal(t, []string{"0412345678"}, result.Numbers)
	assert.Equal(t, http.StatusOK, result.StatusCode)
}

func TestListFreeTrialNumbers_ExemptStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		outcome Outcome
	}{
		{"no content", http.StatusNoContent, OutcomeEmpty},
		{"not found", http.StatusNotFound, OutcomeDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			var seen int
			c := NewClient(testConfig(server.URL), testToken, WithObserver(func(Exchange) { seen++ }))
			result, err := c.ListFreeTrialNumbers(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Empty(t, result.Numbers)
			assert.NotNil(t, result.Numbers)
			assert.Equal(t, tt.status, result.StatusCode)
			assert.Equal(t, 1, seen)
		})
	}
}

func TestListFreeTrialNumbers_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"insufficient scope"}`))
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), testToken)
	_, err := c.ListFreeTrialNumbers(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, `{"message":"insufficient scope"}`, string(httpErr.Body))
	assert.Equal(t, OpListFreeTrial, httpErr.Op)
}

func TestListFreeTrialNumbers_EmptyAndMissingField(t *testing.T) {
	for _, body := range []string{``, `{}`, `{"freeTrialNumbers":[]}`} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer server.Close()

			result, err := NewClient(testConfig(server.URL), testToken).ListFreeTrialNumbers(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeListed, result.Outcome)
			assert.Empty(t, result.Numbers)
		})
	}
}

func TestListFreeTrialNumbers_LenientBodies(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		numbers      []string
		unrecognized bool
	}{
		{"missing key keeps whole body", `{"numbers":["0412345678"]}`, []string{}, true},
		{"top-level array", `["0412345678"]`, []string{}, true},
		{"scalar string", `{"freeTrialNumbers":"0412345678"}`, []string{"0412345678"}, false},
		{"null", `{"freeTrialNumbers":null}`, []string{}, false},
		{"object elements", `{"freeTrialNumbers":[{"msisdn":"0412345678"},"0487654321"]}`,
			[]string{`{"msisdn":"0412345678"}`, "0487654321"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			result, err := NewClient(testConfig(server.URL), testToken).ListFreeTrialNumbers(context.Background())
			require.NoError(t, err)
			assert.Equal(t, OutcomeListed, result.Outcome)
			assert.Equal(t, tt.numbers, result.Numbers)
			assert.Equal(t, tt.unrecognized, result.Unrecognized())
			if tt.unrecognized {
				assert.JSONEq(t, tt.body, string(result.Response))
			}
		})
	}
}

func TestListFreeTrialNumbers_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), testToken).ListFreeTrialNumbers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestRegisterBody(t *testing.T) {
	tests := []struct {
		name     string
		numbers  []string
		expected string
	}{
		{"single number is a scalar", []string{"0412345678"}, `{"freeTrialNumbers":"0412345678"}`},
		{"two numbers are an array", []string{"0412345678", "0487654321"}, `{"freeTrialNumbers":["0412345678","0487654321"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := RegisterBody(tt.numbers)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(body))
		})
	}
}

func TestRegisterFreeTrialNumbers_BodyShape(t *testing.T) {
	tests := []struct {
		name     string
		numbers  []string
		expected string
	}{
		{"single", []string{"0412345678"}, `{"freeTrialNumbers":"0412345678"}`},
		{"multiple", []string{"0412345678", "0487654321"}, `{"freeTrialNumbers":["0412345678","0487654321"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assertProtocolHeaders(t, r)
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.expected, string(body))

				w.WriteHeader(http.StatusCreated)
				w.Write(body)
			}))
			defer server.Close()

			resp, err := NewClient(testConfig(server.URL), testToken).RegisterFreeTrialNumbers(context.Background(), tt.numbers)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(resp))
		})
	}
}

func TestRegisterFreeTrialNumbers_EmptyListMakesNoRequest(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := NewClient(testConfig(server.URL), testToken)
	for _, numbers := range [][]string{nil, {}} {
		_, err := c.RegisterFreeTrialNumbers(context.Background(), numbers)
		require.Error(t, err)

		var valErr *ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Equal(t, "freeTrialNumbers", valErr.Field)
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestRegisterFreeTrialNumbers_SuspectNumbersStillSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"freeTrialNumbers":["12345","+61412345678"]}`, string(body))
		w.Write([]byte(`{"freeTrialNumbers":["12345","+61412345678"]}`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), testToken).
		RegisterFreeTrialNumbers(context.Background(), []string{"12345", "+61412345678"})
	require.NoError(t, err)
}

func TestRegisterFreeTrialNumbers_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"code":"FREE_TRIAL_NUMBERS_LIMIT"}]}`))
	}))
	defer server.Close()

	var seen []Exchange
	c := NewClient(testConfig(server.URL), testToken, WithObserver(func(ex Exchange) { seen = append(seen, ex) }))
	_, err := c.RegisterFreeTrialNumbers(context.Background(), []string{"0412345678"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	require.Len(t, seen, 1)
	assert.Equal(t, OpRegisterFreeTrial, seen[0].Op)
}

func TestRegisterFreeTrialNumbers_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	resp, err := NewClient(testConfig(server.URL), testToken).
		RegisterFreeTrialNumbers(context.Background(), []string{"0412345678"})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestRegisterFreeTrialNumbers_NonJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`accepted`))
	}))
	defer server.Close()

	_, err := NewClient(testConfig(server.URL), testToken).
		RegisterFreeTrialNumbers(context.Background(), []string{"0412345678"})
	require.Error(t, err)
}

type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return http.DefaultTransport.RoundTrip(r)
}

func TestWithTransport_UsedForTokenAndAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/oauth/token" {
			w.Write([]byte(`{"access_token":"abc123"}`))
			return
		}
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	rt := &countingTransport{}
	cfg := testConfig(server.URL)

	tok, err := Authenticate(context.Background(), cfg, time.Second, WithTransport(rt))
	require.NoError(t, err)

	result, err := NewClient(cfg, tok, WithTransport(rt)).ListFreeTrialNumbers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeEmpty, result.Outcome)
	assert.Equal(t, int32(2), rt.calls.Load())
}

func TestClient_AlwaysSendsBearerScheme(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v2/oauth/token" {
			w.Write([]byte(`{"access_token":"abc123","token_type":"BearerToken"}`))
			return
		}
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"freeTrialNumbers":[]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	tok, err := Authenticate(context.Background(), cfg, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "BearerToken", tok.TokenType)

	_, err = NewClient(cfg, tok).ListFreeTrialNumbers(context.Background())
	require.NoError(t, err)
}
