package handler

import (
	"movie-wallet/internal/core/ports"
	"movie-wallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// MovieHandler serves the movie wall.
type MovieHandler struct {
	catalog ports.CatalogService
}

func NewMovieHandler(catalog ports.CatalogService) *MovieHandler {
	return &MovieHandler{catalog: catalog}
}

// List handles GET /api/v1/movies.
func (h *MovieHandler) List(c *gin.Context) {
	response.OK(c, h.catalog.List())
}
