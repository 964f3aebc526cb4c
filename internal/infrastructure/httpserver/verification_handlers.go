package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nexahub/nexahub-backend/internal/core/domain/verification"
)

// Verification handlers
func (s *Server) sendVerificationCode(c echo.Context) error {
	var req verification.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	if err := s.verificationSvc.SendCode(c.Request().Context(), req.Email); err != nil {
		s.logger.WithError(err).Error("failed to send verification code")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send verification code")
	}

	// The code itself is never returned; it travels out-of-band by email.
	return c.JSON(http.StatusOK, map[string]string{
		"message": "verification code sent successfully",
	})
}

func (s *Server) verifyCode(c echo.Context) error {
	var req verification.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "email and code are required")
	}

	outcome, err := s.verificationSvc.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		s.logger.WithError(err).Error("failed to verify code")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to verify code")
	}

	switch outcome {
	case verification.OutcomeOK:
		return c.JSON(http.StatusOK, map[string]string{
			"message": "code verified successfully",
		})
	case verification.OutcomeNotFound:
		return echo.NewHTTPError(http.StatusBadRequest, "no verification code found for this email")
	case verification.OutcomeExpired:
		return echo.NewHTTPError(http.StatusBadRequest, "verification code has expired")
	case verification.OutcomeTooManyAttempts:
		return echo.NewHTTPError(http.StatusBadRequest, "too many attempts, please request a new code")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "invalid verification code")
	}
}
