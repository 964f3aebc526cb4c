package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/nexahub/nexahub-backend/internal/core/ports"
	customMiddleware "github.com/nexahub/nexahub-backend/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
}

type ServerDeps struct {
	VerificationService ports.VerificationService
	OperationService    ports.OperationService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	verificationSvc ports.VerificationService
	operationSvc    ports.OperationService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.Validator = NewRequestValidator()

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		verificationSvc: deps.VerificationService,
		operationSvc:    deps.OperationService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
