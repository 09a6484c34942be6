package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord describes one completed scenario run chain.
type RunRecord struct {
	VersionedRecord
	ID             string  `json:"id"`
	Scenario       string  `json:"scenario"`
	CreatedAtUTC   string  `json:"created_at_utc"`
	Seed           int64   `json:"seed"`
	Dt             float64 `json:"dt"`
	TSave          float64 `json:"t_save"`
	WarmupYears    float64 `json:"warmup_years"`
	RecoveryYears  float64 `json:"recovery_years"`
	CollapseFactor float64 `json:"collapse_factor"`
	Steps          int     `json:"steps"`
	FinalBiomass   float64 `json:"final_biomass"`
}

// TrajectoryPoint is one saved time slice reduced to its summary series.
type TrajectoryPoint struct {
	Time        float64 `json:"time"`
	Biomass     float64 `json:"biomass"`
	SSB         float64 `json:"ssb"`
	Recruitment float64 `json:"recruitment"`
}

// ScenarioSummary compares the pre-collapse state against the end of the
// recovery leg.
type ScenarioSummary struct {
	VersionedRecord
	Name              string  `json:"name"`
	RunID             string  `json:"run_id"`
	BiomassAtCollapse float64 `json:"biomass_at_collapse"`
	BiomassAtEnd      float64 `json:"biomass_at_end"`
	RecoveryFraction  float64 `json:"recovery_fraction"`
}
