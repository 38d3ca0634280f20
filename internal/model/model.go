package model

// SourceType classifies a compact binary merger by its component masses.
type SourceType string

const (
	BBH  SourceType = "BBH"  // binary black hole
	NSBH SourceType = "NSBH" // neutron star - black hole
	BNS  SourceType = "BNS"  // binary neutron star
)

// SourceTypes lists the known types in display order.
var SourceTypes = []SourceType{BBH, NSBH, BNS}

// Known reports whether t is one of the three enumerated types (exact match).
func (t SourceType) Known() bool {
	switch t {
	case BBH, NSBH, BNS:
		return true
	}
	return false
}

// UnknownDate is written in place of a detection date that could not be derived.
const UnknownDate = "Unknown"

// UnknownCatalog is the catalog tag of records without a release name.
const UnknownCatalog = "Unknown"

// Event is one catalog-version record of a detection. The same physical
// merger can appear several times under one Name, once per catalog release.
type Event struct {
	Name          string     `json:"name"`
	FullName      string     `json:"full_name,omitempty"`
	M1            float64    `json:"m1"`
	M2            float64    `json:"m2"`
	SNR           *float64   `json:"snr"`
	SourceType    SourceType `json:"source_type"`
	Color         string     `json:"color,omitempty"`
	DetectionDate string     `json:"detection_date"`
	Catalog       string     `json:"catalog"`
	Version       int        `json:"version,omitempty"`
	GPSTime       float64    `json:"gps_time,omitempty"`

	LuminosityDistance *float64 `json:"luminosity_distance"`
	ChiEff             *float64 `json:"chi_eff"`
	TotalMassSource    *float64 `json:"total_mass_source"`
	ChirpMassSource    *float64 `json:"chirp_mass_source"`
	Redshift           *float64 `json:"redshift"`
	FinalMassSource    *float64 `json:"final_mass_source"`
	FinalSpin          *float64 `json:"final_spin"`
	FAR                *float64 `json:"far"`
	PAstro             *float64 `json:"p_astro"`
}

// Document is the root of the catalog snapshot file.
type Document struct {
	Updated      string  `json:"updated"`
	EventCount   int     `json:"event_count"`
	Events       []Event `json:"events"`
	AllEvents    []Event `json:"all_events,omitempty"`
	UniqueEvents *int    `json:"unique_events,omitempty"`
}

// Float returns a pointer to v, for optional fields.
func Float(v float64) *float64 { return &v }
