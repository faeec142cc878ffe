// Package appcontainersapi serves the application containers table over HTTP
// and WebSockets.
package appcontainersapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainers"
	"github.com/iver-wharf/wharf-apps/pkg/appcontainersapi/docs"
	"github.com/iver-wharf/wharf-apps/pkg/config"
	"github.com/iver-wharf/wharf-core/v2/pkg/ginutil"
	"github.com/iver-wharf/wharf-core/v2/pkg/logger"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/gin-swagger/swaggerFiles"
)

var log = logger.NewScoped("APPS-API")

// Serve starts an HTTP server.
//
// @title Wharf apps API
// @version v0.1.0
// @description REST API for browsing the containers of Kubernetes applications.
// @license.name MIT
// @license.url https://github.com/iver-wharf/wharf-apps/blob/master/LICENSE
// @contact.name Iver wharf-apps support
// @contact.url https://github.com/iver-wharf/wharf-apps/issues
// @contact.email wharf@iver.se
// @query.collection.format multi
func Serve(loader appcontainers.Loader, cfg config.HTTPConfig) error {
	r := NewRouter(loader, cfg)

	log.Info().WithString("address", cfg.BindAddress).Message("Starting server.")
	if err := r.Run(cfg.BindAddress); err != nil {
		log.Error().
			WithError(err).
			WithString("address", cfg.BindAddress).
			Message("Failed to start web server.")
		return err
	}

	return nil
}

// NewRouter creates the gin engine with all endpoints registered.
func NewRouter(loader appcontainers.Loader, cfg config.HTTPConfig) *gin.Engine {
	gin.DefaultWriter = ginutil.DefaultLoggerWriter
	gin.DefaultErrorWriter = ginutil.DefaultLoggerWriter

	r := gin.New()
	r.Use(
		ginutil.DefaultLoggerHandler,
		ginutil.RecoverProblem,
	)

	applyCORS(r, cfg.CORS)

	r.GET("", pingHandler)
	api := r.Group("/api")
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, func(c *ginSwagger.Config) {
		c.InstanceName = docs.SwaggerInfoappcontainersapi.InstanceName()
	}))

	newContainersModule(loader, cfg.CORS).register(api)

	return r
}

func applyCORS(r *gin.Engine, cfg config.CORSConfig) {
	if cfg.AllowAllOrigins {
		log.Info().Message("Allowing all origins in CORS.")
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))
	} else if len(cfg.AllowOrigins) > 0 {
		log.Info().
			WithStringf("origin", "%v", cfg.AllowOrigins).
			Message("Allowing origins in CORS.")
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowOrigins
		corsConfig.AddAllowHeaders("Authorization")
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}
}

// Ping is the response from a GET / request.
type Ping struct {
	Message string `json:"message" example:"pong"`
}

// pingHandler godoc
// @id ping
// @summary Ping
// @description Pong.
// @tags meta
// @produce json
// @success 200 {object} Ping
// @router / [get]
func pingHandler(c *gin.Context) {
	c.JSON(200, Ping{Message: "pong"})
}
