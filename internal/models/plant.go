package models

// PlantRecord is one entry of the read-only plant dataset.
type PlantRecord struct {
	Name              string `json:"name"`
	Link              string `json:"link"`
	Image             string `json:"image"`
	Maintenance       string `json:"maintenance"`
	Sunlight          string `json:"sunlight"`
	Climate           string `json:"climate"`
	SoilType          string `json:"soilType"`
	Toxicity          string `json:"toxicity"`
	WateringFrequency string `json:"wateringFrequency"`
}

// PlantFilter holds the optional exact-match criteria; empty fields match anything.
type PlantFilter struct {
	Maintenance       string `form:"maintenance"`
	Sunlight          string `form:"sunlight"`
	Climate           string `form:"climate"`
	SoilType          string `form:"soilType"`
	Toxicity          string `form:"toxicity"`
	WateringFrequency string `form:"wateringFrequency"`
}

// Match reports whether p satisfies every non-empty criterion.
func (f PlantFilter) Match(p PlantRecord) bool {
	return matchField(f.Maintenance, p.Maintenance) &&
		matchField(f.Sunlight, p.Sunlight) &&
		matchField(f.Climate, p.Climate) &&
		matchField(f.SoilType, p.SoilType) &&
		matchField(f.Toxicity, p.Toxicity) &&
		matchField(f.WateringFrequency, p.WateringFrequency)
}

func matchField(want, got string) bool {
	return want == "" || want == got
}
