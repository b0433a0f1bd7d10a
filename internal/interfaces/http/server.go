// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/tugu-digital/dots/internal/application/port"
	"github.com/tugu-digital/dots/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateLimit    float64
	RateBurst    int
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		RateLimit:    50,
		RateBurst:    100,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	limiter    *rate.Limiter
	handlers   *Handlers
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	txnService service.TransactionService,
	approvalService service.ApprovalService,
	wizardService service.WizardService,
	reportService service.ReportService,
	attachmentService service.AttachmentService,
	identity port.IdentityClient,
	masterData port.MasterDataClient,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:  config,
		router:  router,
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		handlers: NewHandlers(
			txnService,
			approvalService,
			wizardService,
			reportService,
			attachmentService,
			identity,
			masterData,
			logger,
		),
		logger: logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(s.rateLimitMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// rateLimitMiddleware rejects requests beyond the configured sustained rate
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, Response{
				Success: false,
				Error:   "too many requests",
			})
			return
		}
		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := s.handlers

	// Health check
	s.router.GET("/health", h.HealthCheck)

	// API routes, all behind the identity middleware
	api := s.router.Group("/api/v1")
	api.Use(h.identityMiddleware())
	{
		// Transactions
		api.GET("/transactions", h.ListTransactions)
		api.GET("/transactions/:hash", h.GetTransaction)
		api.PUT("/transactions/:hash", h.UpdateTransaction)
		api.DELETE("/transactions/:hash", h.DeleteTransaction)
		api.GET("/transactions/:hash/actions", h.GetActions)
		api.GET("/transactions/:hash/logs", h.GetTransactionLogs)

		// Workflow actions
		api.POST("/transactions/:hash/request-approval", h.RequestApproval)
		api.POST("/transactions/:hash/approve", h.Approve)
		api.POST("/transactions/:hash/revise", h.Revise)
		api.POST("/transactions/:hash/reject", h.Reject)
		api.POST("/transactions/:hash/next-step", h.NextStep)
		api.POST("/transactions/:hash/post", h.PostToSAP)
		api.POST("/transactions/:hash/pay", h.Pay)

		// Attachments
		api.GET("/transactions/:hash/attachments", h.ListAttachments)
		api.POST("/transactions/:hash/attachments", h.UploadAttachment)

		// Wizard sessions
		api.POST("/wizard-sessions", h.StartWizard)
		api.GET("/wizard-sessions/:id", h.GetWizard)
		api.PATCH("/wizard-sessions/:id/fields", h.SetWizardFields)
		api.POST("/wizard-sessions/:id/next", h.AdvanceWizard)
		api.POST("/wizard-sessions/:id/back", h.BackWizard)
		api.POST("/wizard-sessions/:id/reset", h.ResetWizard)
		api.GET("/wizard-sessions/:id/employees", h.WizardEmployees)
		api.POST("/wizard-sessions/:id/submit", h.SubmitWizard)

		// Lookups
		api.GET("/lookups/cost-centers", h.LookupCostCenters)
		api.GET("/lookups/currencies", h.LookupCurrencies)

		// Reports
		api.GET("/reports/transactions.xlsx", h.TransactionsReport)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
