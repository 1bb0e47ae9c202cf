// Package api exposes the company search HTTP endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/companyfinder/internal/logger"
	"github.com/jonesrussell/companyfinder/internal/search"
	"github.com/jonesrussell/companyfinder/internal/storage"
)

// Store is the slice of the storage API the handlers need.
type Store interface {
	GetCompany(ctx context.Context, domain string) (map[string]any, error)
	IndexStats(ctx context.Context) (*storage.IndexStats, error)
}

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler holds HTTP request handlers
type Handler struct {
	searchService *search.Service
	store         Store
	logger        logger.Interface
}

// NewHandler creates a new handler instance
func NewHandler(searchService *search.Service, store Store, log logger.Interface) *Handler {
	return &Handler{
		searchService: searchService,
		store:         store,
		logger:        log,
	}
}

// HealthCheck reports service liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "companyfinder-api",
	})
}

// Search handles company lookup requests. A request with no usable
// criteria is a 400; zero hits is a 404 carrying the shaped
// found=false body, matching the search contract.
func (h *Handler) Search(c *gin.Context) {
	var req search.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid search request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "Invalid request body: " + err.Error(),
			Code:      "INVALID_REQUEST",
			Timestamp: time.Now(),
		})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, search.ErrNoCriteria) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:     "At least one search field must be provided",
				Code:      "VALIDATION_ERROR",
				Timestamp: time.Now(),
			})
			return
		}

		h.logger.Error("Search failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Code:      "SEARCH_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	if !result.Found {
		c.JSON(http.StatusNotFound, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCompany returns the stored document for a domain.
func (h *Handler) GetCompany(c *gin.Context) {
	domain := c.Param("domain")

	doc, err := h.store.GetCompany(c.Request.Context(), domain)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:     "No company found for domain: " + domain,
				Code:      "NOT_FOUND",
				Timestamp: time.Now(),
			})
			return
		}

		h.logger.Error("Failed to fetch company", "domain", domain, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Code:      "STORAGE_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"found":   true,
		"company": doc,
	})
}

// IndexStats reports document count and size for the company index.
func (h *Handler) IndexStats(c *gin.Context) {
	stats, err := h.store.IndexStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch index stats", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			Code:      "STORAGE_ERROR",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exists":         stats.Exists,
		"document_count": stats.DocumentCount,
		"size_bytes":     stats.SizeBytes,
	})
}
