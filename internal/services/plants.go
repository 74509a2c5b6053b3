package services

import (
	"encoding/json"
	"log"
	"os"
	"plantastic/internal/models"
	"strings"
)

// PlantCatalog reads the read-only plant dataset. The file is loaded on every
// query so edits show up without a restart.
type PlantCatalog struct {
	path string
}

func NewPlantCatalog(path string) *PlantCatalog {
	return &PlantCatalog{path: path}
}

func (c *PlantCatalog) load() ([]models.PlantRecord, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		log.Printf("[plants] read %s: %v", c.path, err)
		return nil, newError(ErrInternal, "Failed to load plant data")
	}
	var plants []models.PlantRecord
	if err := json.Unmarshal(data, &plants); err != nil {
		log.Printf("[plants] parse %s: %v", c.path, err)
		return nil, newError(ErrInternal, "Failed to parse plant data")
	}
	return plants, nil
}

// Filter returns the plants matching every non-empty field of f, in file order.
func (c *PlantCatalog) Filter(f models.PlantFilter) ([]models.PlantRecord, error) {
	plants, err := c.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.PlantRecord, 0, len(plants))
	for _, p := range plants {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ByName looks a plant up by name, ignoring case.
func (c *PlantCatalog) ByName(name string) (*models.PlantRecord, error) {
	plants, err := c.load()
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	for i := range plants {
		if strings.EqualFold(plants[i].Name, name) {
			return &plants[i], nil
		}
	}
	return nil, notFound("Plant not found")
}
