package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
	"github.com/nexahub/nexahub-backend/internal/infrastructure/provider"
)

func newClient(baseURL string, timeout time.Duration) *provider.DeepAIClient {
	c := provider.NewDeepAIClient(&provider.DeepAIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: timeout,
	}, logrus.New())
	return c.(*provider.DeepAIClient)
}

func TestSend_Success(t *testing.T) {
	var gotPath, gotAPIKey, gotText, gotLang string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("Api-Key")
		require.NoError(t, r.ParseForm())
		gotText = r.PostFormValue("text")
		gotLang = r.PostFormValue("target_language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","output":"Bonjour"}`))
	}))
	defer ts.Close()

	client := newClient(ts.URL, 5*time.Second)
	result, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointTranslation,
		Prompt:   "Hello",
		Params:   operation.Params{TargetLanguage: "fr"},
	})

	require.NoError(t, err)
	require.Equal(t, "Bonjour", result.Output)
	require.Equal(t, "/neural-machine-translation", gotPath)
	require.Equal(t, "test-key", gotAPIKey)
	require.Equal(t, "Hello", gotText)
	require.Equal(t, "fr", gotLang)
}

func TestSend_GenerationParamsTransmitted(t *testing.T) {
	var gotMaxLength, gotTemperature string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotMaxLength = r.PostFormValue("max_length")
		gotTemperature = r.PostFormValue("temperature")
		_, _ = w.Write([]byte(`{"output":"done"}`))
	}))
	defer ts.Close()

	client := newClient(ts.URL, 5*time.Second)
	_, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   "generate",
		Params:   operation.Params{MaxLength: 500, Temperature: 0.7},
	})

	require.NoError(t, err)
	require.Equal(t, "500", gotMaxLength)
	require.Equal(t, "0.7", gotTemperature)
}

func TestSend_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := newClient(ts.URL, 5*time.Second)
	_, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   "x",
	})

	var authErr *operation.ProviderAuthError
	require.True(t, errors.As(err, &authErr), "expected ProviderAuthError, got %v", err)
}

func TestSend_UpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer ts.Close()

	client := newClient(ts.URL, 5*time.Second)
	_, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointSummarization,
		Prompt:   "x",
	})

	var providerErr *operation.ProviderError
	require.True(t, errors.As(err, &providerErr), "expected ProviderError, got %v", err)
	require.Equal(t, http.StatusBadGateway, providerErr.StatusCode)
	require.Contains(t, providerErr.Body, "upstream exploded")
}

func TestSend_EmptyOutput(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := newClient(ts.URL, 5*time.Second)
	_, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   "x",
	})

	var emptyErr *operation.ProviderEmptyResponseError
	require.True(t, errors.As(err, &emptyErr), "expected ProviderEmptyResponseError, got %v", err)
}

func TestSend_Timeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"output":"too late"}`))
	}))
	defer ts.Close()

	client := newClient(ts.URL, 50*time.Millisecond)
	_, err := client.Send(context.Background(), &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   "x",
	})

	var timeoutErr *operation.ProviderTimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected ProviderTimeoutError, got %v", err)
}

func TestSend_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"output":"too late"}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newClient(ts.URL, 5*time.Second)
	_, err := client.Send(ctx, &operation.ProviderRequest{
		Endpoint: operation.EndpointTextGenerator,
		Prompt:   "x",
	})

	var timeoutErr *operation.ProviderTimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected ProviderTimeoutError, got %v", err)
}
