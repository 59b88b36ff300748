package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	v1 "github.com/demo-night/backend/internal/controllers/v1"
	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/live"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and all middlewares. The returned teardown
// function releases resources that survive the engine, currently the
// prometheus collectors.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		// Method, path, status and latency are added by the middleware
		logger.WithLogger(func(c *gin.Context, _ zerolog.Logger) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Logger()
		})))

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}
	r.Use(MetricsMiddleware())

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "PUT", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	return r, func() { unregisterPrometheusMetrics() }, nil
}

// AttachRoutes attaches the API routes to the router group that is
// passed in. Separating this from Config allows tests to attach the
// routes to a fresh engine per test.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	enableMetrics, ok := os.LookupEnv("ENABLE_METRICS")
	if ok && enableMetrics == "true" {
		group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	live.DefaultHub.Start()

	// API v1 setup
	v1group := group.Group("/v1")
	{
		v1group.GET("", GetV1)
		v1group.OPTIONS("", OptionsV1)
		v1group.GET("/live", gin.WrapH(live.DefaultHub))
	}

	v1.RegisterAuthRoutes(v1group.Group("/auth"))
	v1.RegisterEventRoutes(v1group.Group("/events"))
	v1.RegisterDemoRoutes(v1group.Group("/demos"))
	v1.RegisterAwardRoutes(v1group.Group("/awards"))
	v1.RegisterAttendeeRoutes(v1group.Group("/attendees"))
	v1.RegisterVoteRoutes(v1group.Group("/votes"))
	v1.RegisterMatchRoutes(v1group.Group("/matches"))

	// Organizer-only mutations sit behind the admin gate
	admin := v1group.Group("", AdminRequired())
	admin.DELETE("", v1.Cleanup)
	v1.RegisterEventAdminRoutes(admin.Group("/events"))
	v1.RegisterDemoAdminRoutes(admin.Group("/demos"))
	v1.RegisterAwardAdminRoutes(admin.Group("/awards"))
	v1.RegisterAttendeeAdminRoutes(admin.Group("/attendees"))
	v1.RegisterMatchAdminRoutes(admin.Group("/matches"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"`
	Version string `json:"version" example:"https://example.com/api/version"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(contextURL)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Version: url + "/version",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Auth      string `json:"auth" example:"https://example.com/api/v1/auth"`
	Events    string `json:"events" example:"https://example.com/api/v1/events"`
	Demos     string `json:"demos" example:"https://example.com/api/v1/demos"`
	Awards    string `json:"awards" example:"https://example.com/api/v1/awards"`
	Attendees string `json:"attendees" example:"https://example.com/api/v1/attendees"`
	Votes     string `json:"votes" example:"https://example.com/api/v1/votes"`
	Matches   string `json:"matches" example:"https://example.com/api/v1/matches"`
	Live      string `json:"live" example:"wss://example.com/api/v1/live"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			General
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(contextURL) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:      url + "/auth",
			Events:    url + "/events",
			Demos:     url + "/demos",
			Awards:    url + "/awards",
			Attendees: url + "/attendees",
			Votes:     url + "/votes",
			Matches:   url + "/matches",
			Live:      url + "/live",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
