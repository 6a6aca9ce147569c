// Package api exposes the hub's merged data and its AI and submission
// collaborators over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/aura-hub/aurahub"
	"github.com/aura-hub/aurahub/governance"
)

const requestIDHeader = "X-Request-ID"

// Assistant is the AI collaborator surface the handlers depend on. It is
// satisfied by aurahub.GeminiClient.
type Assistant interface {
	GenerateAuraResponse(ctx context.Context, userPrompt string) string
	GenerateTryOnTransformation(ctx context.Context, userImageB64, productImageB64 string) (string, error)
}

// Submitter is the vendor-application submission surface, satisfied by
// aurahub.SupabaseClient.
type Submitter interface {
	SubmitVendorRequest(ctx context.Context, application map[string]any) (map[string]any, error)
}

// Server wires the store, the collaborators, and the governance engine into an
// echo application.
type Server struct {
	store     *aurahub.Store
	assistant Assistant
	submitter Submitter
	screener  *governance.Engine
	log       *logrus.Logger

	httpClient *http.Client
	echo       *echo.Echo
}

// NewServer builds the HTTP surface. Any of assistant, submitter, and screener
// may be nil; the corresponding endpoints answer with an error envelope.
func NewServer(store *aurahub.Store, assistant Assistant, submitter Submitter, screener *governance.Engine, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	server := &Server{
		store:      store,
		assistant:  assistant,
		submitter:  submitter,
		screener:   screener,
		log:        log,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newValidator()
	e.Use(server.requestID)
	e.Use(server.requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server.registerRoutes(e)
	server.echo = e
	return server
}

func (server *Server) registerRoutes(e *echo.Echo) {
	e.GET("/health", server.handleHealth)

	g := e.Group("/api")
	g.GET("/vendors", server.handleListVendors)
	g.POST("/vendors", server.handleAddVendor)
	g.GET("/storefront/:slug", server.handleStorefront)
	g.GET("/storefront/:slug/feed.xml", server.handleStorefrontFeed)
	g.GET("/products", server.handleListProducts)
	g.POST("/products", server.handleAddProduct)
	g.DELETE("/products/:id", server.handleDeleteProduct)
	g.GET("/orders", server.handleListOrders)
	g.POST("/orders", server.handleAddOrder)
	g.GET("/orders/:id", server.handleGetOrder)
	g.GET("/stats", server.handleStats)
	g.GET("/live-sales", server.handleLiveSales)
	g.POST("/assistant", server.handleAssistant)
	g.POST("/tryon", server.handleTryOn)
	g.POST("/applications", server.handleApplication)
	g.GET("/events", server.handleEvents)
}

// Router exposes the underlying echo instance, mainly for httptest servers.
func (server *Server) Router() *echo.Echo {
	return server.echo
}

// Start serves on the given address until Shutdown is called.
func (server *Server) Start(address string) error {
	server.log.WithField("address", address).Info("starting api server")
	return server.echo.Start(address)
}

// Shutdown drains in-flight requests and stops the server.
func (server *Server) Shutdown(ctx context.Context) error {
	return server.echo.Shutdown(ctx)
}

// requestID tags every request with an id, honoring one supplied by the client.
func (server *Server) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Response().Header().Set(requestIDHeader, id)
		return next(c)
	}
}

func (server *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		entry := server.log.WithFields(logrus.Fields{
			"request_id": c.Get("request_id"),
			"method":     c.Request().Method,
			"path":       c.Request().URL.Path,
			"status":     c.Response().Status,
			"latency":    time.Since(start).String(),
		})
		if err != nil {
			entry.WithError(err).Error("request failed")
		} else {
			entry.Info("request served")
		}
		return err
	}
}

func (server *Server) handleHealth(c echo.Context) error {
	return Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}
