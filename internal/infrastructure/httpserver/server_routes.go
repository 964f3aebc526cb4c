package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api")
	api.POST("/send-verification", s.sendVerificationCode)
	api.POST("/verify-code", s.verifyCode)
	api.POST("/text", s.processText)
	api.POST("/tools/generate", s.generateTool)
	api.POST("/chat", s.chat)
}
