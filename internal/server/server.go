package server

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/tensorgraph/internal/config"
	"github.com/agenthands/tensorgraph/internal/core"
	"github.com/agenthands/tensorgraph/internal/core/classify"
	"github.com/agenthands/tensorgraph/internal/driver"
)

type Server struct {
	Downloader *core.Downloader
	Log        *logrus.Logger
}

func NewServer() *Server {
	log := logrus.StandardLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Env overrides for the store connection.
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		cfg.Neo4j.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		cfg.Neo4j.User = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		cfg.Neo4j.Password = pass
	}
	if db := os.Getenv("NEO4J_DATABASE"); db != "" {
		cfg.Neo4j.Database = db
	}
	if cfg.Neo4j.URI == "" {
		cfg.Neo4j.URI = "bolt://localhost:7687"
	}

	d, err := driver.NewNeo4jDriver(cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, cfg.Neo4j.Database)
	if err != nil {
		log.Fatalf("Failed to connect to graph store: %v", err)
	}

	return &Server{
		Downloader: core.NewDownloader(d, cfg.Relations, cfg.Concurrency.Fetch),
		Log:        log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/subgraph", s.handleSubgraph)
		api.POST("/nodes", s.handleNodes)
		api.GET("/edges", s.handleEdges)
		api.POST("/query", s.handleQuery)
	}

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		s.Log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	}
}

type subgraphRequest struct {
	Filter string `json:"filter" binding:"required"`
	Depth  int    `json:"depth"`
}

func (s *Server) handleSubgraph(c *gin.Context) {
	var req subgraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := s.Downloader.RetrieveSubgraph(c.Request.Context(), req.Filter, req.Depth)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

type nodesRequest struct {
	Labels []string `json:"labels" binding:"required"`
}

func (s *Server) handleNodes(c *gin.Context) {
	var req nodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nodes, err := s.Downloader.RetrieveNodes(c.Request.Context(), req.Labels)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nodes": nodes})
}

func (s *Server) handleEdges(c *gin.Context) {
	indices, attrs, err := s.Downloader.RetrieveEdges(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"edges_indices":    indices,
		"edges_attributes": attrs,
	})
}

type queryRequest struct {
	Cypher string         `json:"cypher" binding:"required"`
	Params map[string]any `json:"params"`
}

func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := s.Downloader.RunCustomQuery(c.Request.Context(), req.Cypher, req.Params)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) renderError(c *gin.Context, err error) {
	var unknownRel *classify.UnknownRelationshipTypeError
	var queryErr *driver.QueryError

	switch {
	case errors.Is(err, core.ErrInvalidDepth):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unknownRel):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &queryErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
