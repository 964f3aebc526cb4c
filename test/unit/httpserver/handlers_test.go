package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
	nexahub_http "github.com/nexahub/nexahub-backend/internal/infrastructure/httpserver"
	"github.com/nexahub/nexahub-backend/test/mocks"
)

func newTestServer(verificationSvc *mocks.VerificationServiceMock, operationSvc *mocks.OperationServiceMock) *httptest.Server {
	srv := nexahub_http.NewServer(&nexahub_http.ServerConfig{
		Host:         "127.0.0.1",
		Port:         "0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		IdleTimeout:  time.Second,
	}, logrus.New(), nexahub_http.ServerDeps{
		VerificationService: verificationSvc,
		OperationService:    operationSvc,
	})
	return httptest.NewServer(srv.Echo())
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &parsed)
	}
	return resp, parsed
}

func TestSendVerification_OK(t *testing.T) {
	sent := ""
	verificationSvc := &mocks.VerificationServiceMock{
		SendCodeFn: func(ctx context.Context, email string) error {
			sent = email
			return nil
		},
	}
	ts := newTestServer(verificationSvc, &mocks.OperationServiceMock{})
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/send-verification", map[string]string{"email": "a@b.com"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "verification code sent successfully", body["message"])
	require.Equal(t, "a@b.com", sent)
}

func TestSendVerification_MissingEmail(t *testing.T) {
	ts := newTestServer(&mocks.VerificationServiceMock{}, &mocks.OperationServiceMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/send-verification", map[string]string{})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendVerification_DeliveryFailure(t *testing.T) {
	verificationSvc := &mocks.VerificationServiceMock{
		SendCodeFn: func(ctx context.Context, email string) error {
			return context.DeadlineExceeded
		},
	}
	ts := newTestServer(verificationSvc, &mocks.OperationServiceMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/send-verification", map[string]string{"email": "a@b.com"})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestVerifyCode_OutcomeMapping(t *testing.T) {
	cases := []struct {
		outcome    verification.Outcome
		wantStatus int
		wantText   string
	}{
		{verification.OutcomeOK, http.StatusOK, "code verified successfully"},
		{verification.OutcomeNotFound, http.StatusBadRequest, "no verification code found for this email"},
		{verification.OutcomeExpired, http.StatusBadRequest, "verification code has expired"},
		{verification.OutcomeTooManyAttempts, http.StatusBadRequest, "too many attempts, please request a new code"},
		{verification.OutcomeMismatch, http.StatusBadRequest, "invalid verification code"},
	}

	for _, tc := range cases {
		verificationSvc := &mocks.VerificationServiceMock{
			VerifyCodeFn: func(ctx context.Context, email, code string) (verification.Outcome, error) {
				return tc.outcome, nil
			},
		}
		ts := newTestServer(verificationSvc, &mocks.OperationServiceMock{})

		resp, body := doJSON(t, ts, http.MethodPost, "/api/verify-code", map[string]string{"email": "a@b.com", "code": "123456"})
		ts.Close()

		require.Equal(t, tc.wantStatus, resp.StatusCode, "outcome %s", tc.outcome)
		if tc.wantStatus == http.StatusOK {
			require.Equal(t, tc.wantText, body["message"], "outcome %s", tc.outcome)
		} else {
			require.Equal(t, tc.wantText, body["message"], "outcome %s", tc.outcome)
		}
	}
}

func TestProcessText_Translate(t *testing.T) {
	operationSvc := &mocks.OperationServiceMock{
		DispatchFn: func(ctx context.Context, req *operation.Request) (*operation.Result, error) {
			require.Equal(t, operation.TypeTranslate, req.Type)
			require.Equal(t, "Hello", req.Payload.Text)
			require.Equal(t, "fr", req.Payload.TargetLanguage)
			return &operation.Result{Output: "Bonjour"}, nil
		},
	}
	ts := newTestServer(&mocks.VerificationServiceMock{}, operationSvc)
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/text", map[string]string{
		"operation":      "translate",
		"text":           "Hello",
		"targetLanguage": "fr",
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Bonjour", body["result"])
}

func TestProcessText_InvalidOperation(t *testing.T) {
	ts := newTestServer(&mocks.VerificationServiceMock{}, &mocks.OperationServiceMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/text", map[string]string{
		"operation": "sing",
		"text":      "Hello",
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateTool_EnhanceTextNormalization(t *testing.T) {
	operationSvc := &mocks.OperationServiceMock{
		DispatchFn: func(ctx context.Context, req *operation.Request) (*operation.Result, error) {
			require.Equal(t, operation.TypeEnhanceText, req.Type)
			require.Equal(t, "raw text", req.Payload.Text)
			require.Equal(t, "rewrite", req.Payload.Style)
			return &operation.Result{Output: "better text"}, nil
		},
	}
	ts := newTestServer(&mocks.VerificationServiceMock{}, operationSvc)
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/tools/generate", map[string]any{
		"type": "text_enhance",
		"data": map[string]any{
			"text":  map[string]any{"text": "raw text"},
			"style": "rewrite",
		},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "better text", body["result"])
}

func TestGenerateTool_UnsupportedType(t *testing.T) {
	ts := newTestServer(&mocks.VerificationServiceMock{}, &mocks.OperationServiceMock{})
	defer ts.Close()

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/tools/generate", map[string]any{
		"type": "poem",
		"data": map[string]any{"x": 1},
	})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChat_Response(t *testing.T) {
	operationSvc := &mocks.OperationServiceMock{
		DispatchFn: func(ctx context.Context, req *operation.Request) (*operation.Result, error) {
			require.Equal(t, operation.TypeChat, req.Type)
			require.Equal(t, "hello", req.Payload.Message)
			require.Len(t, req.Payload.History, 1)
			return &operation.Result{Output: "hi"}, nil
		},
	}
	ts := newTestServer(&mocks.VerificationServiceMock{}, operationSvc)
	defer ts.Close()

	resp, body := doJSON(t, ts, http.MethodPost, "/api/chat", map[string]any{
		"message": "hello",
		"history": []map[string]string{{"role": "user", "content": "earlier"}},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hi", body["response"])
}

func TestOperationErrors_WireMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &operation.ValidationError{Field: "text", Reason: "text is required"}, http.StatusBadRequest, ""},
		{"auth", &operation.ProviderAuthError{}, http.StatusInternalServerError, "provider_auth"},
		{"empty", &operation.ProviderEmptyResponseError{Endpoint: operation.EndpointTextGenerator}, http.StatusInternalServerError, "provider_empty_response"},
		{"timeout", &operation.ProviderTimeoutError{Cause: context.DeadlineExceeded}, http.StatusInternalServerError, "provider_timeout"},
		{"upstream", &operation.ProviderError{StatusCode: 502, Body: "bad gateway"}, http.StatusInternalServerError, "provider_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			operationSvc := &mocks.OperationServiceMock{
				DispatchFn: func(ctx context.Context, req *operation.Request) (*operation.Result, error) {
					return nil, tc.err
				},
			}
			ts := newTestServer(&mocks.VerificationServiceMock{}, operationSvc)
			defer ts.Close()

			resp, body := doJSON(t, ts, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})

			require.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantCode != "" {
				require.Equal(t, tc.wantCode, body["code"])
				// Upstream detail stays out of the client response.
				require.NotContains(t, body["error"], "bad gateway")
			}
		})
	}
}
