package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/domain/operation"
)

type textRequest struct {
	Operation      string `json:"operation" validate:"required"`
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"targetLanguage"`
}

type toolsGenerateRequest struct {
	Type string         `json:"type" validate:"required"`
	Data map[string]any `json:"data" validate:"required"`
}

type chatRequest struct {
	Message string               `json:"message" validate:"required"`
	History []operation.ChatTurn `json:"history"`
}

// toolTypes maps the wire-level tool names onto operation types.
var toolTypes = map[string]operation.Type{
	"resume":       operation.TypeGenerateResume,
	"study":        operation.TypeGenerateStudy,
	"quiz":         operation.TypeGenerateQuiz,
	"text_enhance": operation.TypeEnhanceText,
}

// processText handles summarize and translate requests.
func (s *Server) processText(c echo.Context) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "operation and text are required")
	}

	var opReq *operation.Request
	switch req.Operation {
	case "summarize":
		opReq = &operation.Request{
			Type:    operation.TypeSummarize,
			Payload: operation.Payload{Text: req.Text},
		}
	case "translate":
		opReq = &operation.Request{
			Type:    operation.TypeTranslate,
			Payload: operation.Payload{Text: req.Text, TargetLanguage: req.TargetLanguage},
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid operation")
	}

	result, err := s.operationSvc.Dispatch(c.Request().Context(), opReq)
	if err != nil {
		return s.operationErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"result": result.Output})
}

// generateTool handles the structured generation tools (resume, study
// materials, quiz, text enhancement).
func (s *Server) generateTool(c echo.Context) error {
	var req toolsGenerateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "type and data are required")
	}

	opType, ok := toolTypes[req.Type]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported tool type")
	}

	payload := operation.Payload{Data: req.Data}
	if opType == operation.TypeEnhanceText {
		payload = operation.EnhancePayloadFromData(req.Data)
	}

	result, err := s.operationSvc.Dispatch(c.Request().Context(), &operation.Request{Type: opType, Payload: payload})
	if err != nil {
		return s.operationErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"result": result.Output})
}

func (s *Server) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	result, err := s.operationSvc.Dispatch(c.Request().Context(), &operation.Request{
		Type:    operation.TypeChat,
		Payload: operation.Payload{Message: req.Message, History: req.History},
	})
	if err != nil {
		return s.operationErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"response": result.Output})
}

// operationErrorResponse maps dispatcher and provider failures to wire
// responses: validation failures surface verbatim with a 400, provider
// failures surface as a sanitized message plus stable error code while the
// full detail goes to the log.
func (s *Server) operationErrorResponse(c echo.Context, err error) error {
	var validationErr *operation.ValidationError
	if errors.As(err, &validationErr) {
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	}

	var authErr *operation.ProviderAuthError
	if errors.As(err, &authErr) {
		s.logger.WithError(err).Error("provider authentication failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "text generation is unavailable",
			"code":  "provider_auth",
		})
	}

	var emptyErr *operation.ProviderEmptyResponseError
	if errors.As(err, &emptyErr) {
		s.logger.WithError(err).Error("provider returned empty response")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "no response from provider",
			"code":  "provider_empty_response",
		})
	}

	var timeoutErr *operation.ProviderTimeoutError
	if errors.As(err, &timeoutErr) {
		s.logger.WithError(err).Error("provider request timed out")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "provider request timed out",
			"code":  "provider_timeout",
		})
	}

	var providerErr *operation.ProviderError
	if errors.As(err, &providerErr) {
		s.logger.WithFields(logrus.Fields{
			"status": providerErr.StatusCode,
			"body":   providerErr.Body,
		}).WithError(err).Error("provider request failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "operation failed",
			"code":  "provider_error",
		})
	}

	s.logger.WithError(err).Error("operation failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
