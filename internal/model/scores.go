package model

// Dimension tags for INAPV questions. A question may carry one or both.
const (
	DimInterest = "interest"
	DimAptitude = "aptitude"
)

// InapAreas is the fixed set of vocational area codes scored by the INAPV test.
var InapAreas = []string{"adm", "agr", "art", "csn", "edu", "ing", "sal", "seg", "soc", "tec"}

// CaasDimensions is the fixed set of adaptability facets of the CAAS test.
var CaasDimensions = []string{"concern", "control", "curiosity", "confidence"}

// Levels assigned from the overall CAAS percentage.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// AreaDimScore holds the points of one area split by dimension.
// Total is always Interest + Aptitude.
type AreaDimScore struct {
	Interest int `json:"interest"`
	Aptitude int `json:"aptitude"`
	Total    int `json:"total"`
}

// AreaDimPercent is the percentage view of an AreaDimScore against its maxima.
type AreaDimPercent struct {
	Interest float64 `json:"interest"`
	Aptitude float64 `json:"aptitude"`
	Total    float64 `json:"total"`
}

// DimensionScore is the per-dimension breakdown of a CAAS result.
type DimensionScore struct {
	Score      int     `json:"score"`
	Max        int     `json:"max"`
	Percentage float64 `json:"percentage"`
}

// IsValidInapArea reports whether code is one of the fixed area codes.
func IsValidInapArea(code string) bool {
	for _, a := range InapAreas {
		if a == code {
			return true
		}
	}
	return false
}

// IsValidCaasDimension reports whether code is one of the fixed dimension codes.
func IsValidCaasDimension(code string) bool {
	for _, d := range CaasDimensions {
		if d == code {
			return true
		}
	}
	return false
}
