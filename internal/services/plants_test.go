package services

import (
	"errors"
	"os"
	"path/filepath"
	"plantastic/internal/models"
	"testing"
)

const testPlantsJSON = `[
  {"name": "Snake Plant", "maintenance": "Low", "sunlight": "Low Light", "climate": "Arid", "soilType": "Well-draining", "toxicity": "Toxic to pets", "wateringFrequency": "Monthly"},
  {"name": "Pothos", "maintenance": "Low", "sunlight": "Partial Shade", "climate": "Tropical", "soilType": "Well-draining", "toxicity": "Toxic to pets", "wateringFrequency": "Weekly"},
  {"name": "Boston Fern", "maintenance": "High", "sunlight": "Partial Shade", "climate": "Tropical", "soilType": "Moist", "toxicity": "Non-toxic", "wateringFrequency": "Weekly"}
]`

func writePlants(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plants.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlantFilter(t *testing.T) {
	catalog := NewPlantCatalog(writePlants(t, testPlantsJSON))

	tests := []struct {
		name   string
		filter models.PlantFilter
		want   []string
	}{
		{"no filter", models.PlantFilter{}, []string{"Snake Plant", "Pothos", "Boston Fern"}},
		{"one field", models.PlantFilter{Maintenance: "Low"}, []string{"Snake Plant", "Pothos"}},
		{"two fields", models.PlantFilter{Maintenance: "Low", Climate: "Tropical"}, []string{"Pothos"}},
		{"exact match only", models.PlantFilter{Maintenance: "low"}, nil},
		{"no match", models.PlantFilter{Sunlight: "Full Sun"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Filter(tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d plants, want %d", len(got), len(tt.want))
			}
			for i, p := range got {
				if p.Name != tt.want[i] {
					t.Errorf("plant %d = %q, want %q", i, p.Name, tt.want[i])
				}
			}
		})
	}
}

func TestPlantCatalogRereadsFile(t *testing.T) {
	path := writePlants(t, testPlantsJSON)
	catalog := NewPlantCatalog(path)

	if _, err := catalog.ByName("Cactus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if err := os.WriteFile(path, []byte(`[{"name": "Cactus"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := catalog.ByName("cactus"); err != nil {
		t.Errorf("edited file not picked up: %v", err)
	}
}

func TestPlantByNameIgnoresCase(t *testing.T) {
	catalog := NewPlantCatalog(writePlants(t, testPlantsJSON))

	p, err := catalog.ByName("boston FERN")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Boston Fern" {
		t.Errorf("got %q", p.Name)
	}
}

func TestPlantCatalogBrokenData(t *testing.T) {
	missing := NewPlantCatalog(filepath.Join(t.TempDir(), "nope.json"))
	if _, err := missing.Filter(models.PlantFilter{}); !errors.Is(err, ErrInternal) || Message(err) != "Failed to load plant data" {
		t.Errorf("missing file: got %v", err)
	}

	broken := NewPlantCatalog(writePlants(t, "{not json"))
	if _, err := broken.Filter(models.PlantFilter{}); !errors.Is(err, ErrInternal) || Message(err) != "Failed to parse plant data" {
		t.Errorf("broken file: got %v", err)
	}
}
