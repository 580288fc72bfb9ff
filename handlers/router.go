package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter registers the relay's routes behind open CORS and request logging
func NewRouter(h *Handler, log *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	// Any origin, method and header; credentials allowed, so the origin is echoed
	router.Use(cors.New(cors.Config{
		AllowOriginFunc: func(string) bool { return true },
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.POST("/chat", h.Chat)

	router.NoRoute(h.NotFound)

	return router
}
