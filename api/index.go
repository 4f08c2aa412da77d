package handler

import (
	"net/http"
	"sync"

	"daily-digest/config"

	"github.com/gin-gonic/gin"
)

var (
	router     *gin.Engine
	routerOnce sync.Once
)

// Handler is the entry point for Vercel. The router is built on the first
// request so importing this package has no side effects.
func Handler(w http.ResponseWriter, r *http.Request) {
	routerOnce.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		router = NewRouter(config.LoadServe(config.New()).OutputDir)
	})
	router.ServeHTTP(w, r)
}
