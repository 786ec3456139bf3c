// Package router wires the HTTP surface: the inbound message webhook,
// health and metrics endpoints and the media directory for chart replies.
package router

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fridaybot/backend/internal/conversation"
	"github.com/fridaybot/backend/internal/sms"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config is everything the router needs to serve.
type Config struct {
	Service *conversation.Service
	Sender  sms.Sender

	// MediaDir is served under /media when set.
	MediaDir string

	// CORSAllowOrigins is a space separated list of allowed origins.
	// CORS is off when empty.
	CORSAllowOrigins string

	EnablePprof bool
}

// Router sets up the router, middlewares and routes.
func Router(config Config) (*gin.Engine, error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if config.CORSAllowOrigins != "" {
		log.Debug().Str("CORS Allowed Origins", config.CORSAllowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(config.CORSAllowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	if err := registerPrometheusMetrics(); err != nil {
		return nil, err
	}
	r.Use(MetricsMiddleware())

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	r.GET("", GetRoot)
	r.GET("/version", GetVersion)
	r.GET("/healthz", GetHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if config.EnablePprof {
		pprof.RouteRegister(&r.RouterGroup, "debug/pprof")
	}

	if config.MediaDir != "" {
		r.Static("/media", config.MediaDir)
	}

	webhook := &WebhookController{Service: config.Service, Sender: config.Sender}
	r.POST("/webhook/sms", webhook.InboundSMS)

	log.Info().Str("version", version).Msg("Router")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/healthz"`
	Metrics string `json:"metrics" example:"https://example.com/metrics"`
	Version string `json:"version" example:"https://example.com/version"`
	Webhook string `json:"webhook" example:"https://example.com/webhook/sms"`
}

// GetRoot is the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	url := requestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Metrics: url + "/metrics",
			Version: url + "/version",
			Webhook: url + "/webhook/sms",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealthz returns 204 as long as the process serves requests.
func GetHealthz(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// requestHost returns the scheme and host the request was made against.
func requestHost(c *gin.Context) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}

	return scheme + "://" + c.Request.Host
}
