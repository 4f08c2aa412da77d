package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"daily-digest/publish"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter serves the published digest files in dir plus a small JSON API.
func NewRouter(dir string) *gin.Engine {
	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	pages := &pageServer{dir: dir}

	api := r.Group("/api/v1")
	{
		api.GET("/archive", pages.GetArchive)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
	}

	r.GET("/", pages.GetLatest)
	r.NoRoute(pages.GetPage)

	return r
}

type pageServer struct {
	dir string
}

// GetArchive lists the archived digests, newest first
func (p *pageServer) GetArchive(c *gin.Context) {
	entries, err := publish.ListArchive(p.dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "archive_error",
			Message: "Failed to list archive",
		})
		return
	}

	response := ArchiveResponse{
		Success: true,
		Data:    entries,
		Count:   len(entries),
	}
	if p.exists(publish.LatestFile) {
		response.Latest = "/" + publish.LatestFile
	}

	c.JSON(http.StatusOK, response)
}

func (p *pageServer) GetLatest(c *gin.Context) {
	p.serve(c, publish.LatestFile)
}

// GetPage serves the three published file shapes and nothing else.
func (p *pageServer) GetPage(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		p.notFound(c)
		return
	}

	name := strings.TrimPrefix(c.Request.URL.Path, "/")
	if name != publish.LatestFile && name != publish.ArchiveIndexFile && !publish.IsArchiveFile(name) {
		p.notFound(c)
		return
	}
	p.serve(c, name)
}

func (p *pageServer) serve(c *gin.Context, name string) {
	if !p.exists(name) {
		p.notFound(c)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.File(filepath.Join(p.dir, name))
}

func (p *pageServer) exists(name string) bool {
	info, err := os.Stat(filepath.Join(p.dir, name))
	return err == nil && info.Mode().IsRegular()
}

func (p *pageServer) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Success: false,
		Error:   "not_found",
		Message: "Page not found",
	})
}
