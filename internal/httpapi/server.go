// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httpapi exposes the engine over HTTP.
// Implements: prd006-frontends (R2);
//
//	docs/ARCHITECTURE § Front Ends.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/trend-engine/internal/product"
	"github.com/pdiddy/trend-engine/internal/publish"
	"github.com/pdiddy/trend-engine/internal/research"
	"github.com/pdiddy/trend-engine/internal/store"
)

// Server maps REST routes onto the engine components.
type Server struct {
	store     *store.Store
	pipeline  *research.Pipeline
	creator   *product.Creator
	publisher *publish.Publisher
	started   time.Time
}

// New builds the server and its router.
func New(st *store.Store, pipeline *research.Pipeline, creator *product.Creator, publisher *publish.Publisher) *Server {
	return &Server{
		store:     st,
		pipeline:  pipeline,
		creator:   creator,
		publisher: publisher,
		started:   time.Now().UTC(),
	}
}

// Router wires all routes. Exposed separately so tests can drive the
// handlers without a listener.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.GET("/research", s.getResearch)
		api.POST("/research/run", s.postResearchRun)
		api.DELETE("/research/items/:keyword", s.deleteItem)
		api.DELETE("/research/latest", s.deleteLatestRun)
		api.GET("/products", s.getProducts)
		api.POST("/products", s.postProduct)
		api.POST("/publish", s.postPublish)
		api.GET("/activity", s.getActivity)
		api.GET("/revenue", s.getRevenue)
	}
	return r
}

// Serve runs the HTTP server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) getStatus(c *gin.Context) {
	run, items, err := s.store.LatestRun(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"uptime":          time.Since(s.started).Round(time.Second).String(),
		"latest_run_id":   run.RunID,
		"latest_run_size": len(items),
	})
}

func (s *Server) getResearch(c *gin.Context) {
	run, items, err := s.store.LatestRun(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	if run.RunID == "" {
		c.JSON(http.StatusOK, gin.H{"run": nil, "items": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "items": items})
}

func (s *Server) postResearchRun(c *gin.Context) {
	result, err := s.pipeline.Run(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) deleteItem(c *gin.Context) {
	keyword := c.Param("keyword")
	if err := s.store.DeleteItem(c.Request.Context(), keyword); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": keyword})
}

func (s *Server) deleteLatestRun(c *gin.Context) {
	n, err := s.store.DeleteLatestRun(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted_count": n})
}

func (s *Server) getProducts(c *gin.Context) {
	products, err := s.store.Products(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// postProduct creates a product. With an empty body the top trend of
// the latest run is used; a JSON body selects the keyword explicitly.
func (s *Server) postProduct(c *gin.Context) {
	var req struct {
		Keyword     string `json:"keyword"`
		ProductType string `json:"product_type"`
	}
	_ = c.ShouldBindJSON(&req)

	var err error
	var p any
	if req.Keyword == "" {
		p, err = s.creator.CreateFromLatest(c.Request.Context())
	} else {
		productType := req.ProductType
		if productType == "" {
			productType = research.Classify(req.Keyword)
		}
		p, err = s.creator.Create(c.Request.Context(), req.Keyword, productType)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) postPublish(c *gin.Context) {
	prod, err := s.publisher.PublishLatest(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prod)
}

func (s *Server) getActivity(c *gin.Context) {
	activities, err := s.store.RecentActivity(c.Request.Context(), 50)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": activities})
}

func (s *Server) getRevenue(c *gin.Context) {
	total, err := s.store.Revenue(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_revenue": total})
}

// abortWithError maps the store's error taxonomy onto status codes:
// missing data is 404, a down store is 503, anything else 500.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
