package widget

// Record is one input point. Missing coordinates make it unplaceable.
type Record struct {
	Latitude  *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Longitude *float64 `json:"long,omitempty" yaml:"long,omitempty"`
	Name      string   `json:"name" yaml:"name"`
	Address   string   `json:"address" yaml:"address"`
	Param     string   `json:"param" yaml:"param"`
}

// IsPlaceable reports whether both coordinates are present and non-zero.
func IsPlaceable(r Record) bool {
	return r.Latitude != nil && r.Longitude != nil &&
		*r.Latitude != 0 && *r.Longitude != 0
}

// Coord returns a pointer to v, for building records in code.
func Coord(v float64) *float64 { return &v }
