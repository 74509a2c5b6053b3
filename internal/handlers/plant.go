package handlers

import (
	"net/http"
	"plantastic/internal/models"
	"plantastic/internal/services"

	"github.com/gin-gonic/gin"
)

type PlantHandler struct {
	catalog *services.PlantCatalog
}

func NewPlantHandler(catalog *services.PlantCatalog) *PlantHandler {
	return &PlantHandler{catalog: catalog}
}

// List handles GET /plants?maintenance=&sunlight=&...
func (h *PlantHandler) List(c *gin.Context) {
	var filter models.PlantFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		badRequest(c, "Invalid plant filter")
		return
	}

	plants, err := h.catalog.Filter(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plants)
}

// Detail handles GET /plants/:name.
func (h *PlantHandler) Detail(c *gin.Context) {
	plant, err := h.catalog.ByName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plant)
}
