package domain

import "time"

type Tml struct {
	ID        int64  `db:"id" json:"id"`
	CircuitID string `db:"circuit_id" json:"circuitId"`
	TmlID     string `db:"tml_id" json:"tmlId"`
}

type Measurement struct {
	ID              int64    `db:"id" json:"id"`
	TmlRecordID     int64    `db:"tml_record_id" json:"tmlRecordId"`
	MeasurementDate Date     `db:"measurement_date" json:"measurementDate"`
	Thickness       *float64 `db:"thickness" json:"thickness"`
	Temperature     *float64 `db:"temperature" json:"temperature"`
	CorrosionRate   *float64 `db:"corrosion_rate" json:"corrosionRate"`
}

// Classification is a labeled [min, max) interval. A nil bound is open on
// that side.
type Classification struct {
	ID                 int64    `db:"id" json:"id"`
	ClassificationType string   `db:"classification_type" json:"classificationType"`
	RangeLabel         string   `db:"range_label" json:"rangeLabel"`
	MinValue           *float64 `db:"min_value" json:"minValue"`
	MaxValue           *float64 `db:"max_value" json:"maxValue"`
}

// APIKey is a stored Gemini credential. The secret is never serialized.
type APIKey struct {
	ID        int64     `db:"id" json:"id"`
	APIKey    string    `db:"api_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	IsActive  bool      `db:"is_active" json:"isActive"`
}

// DistributionRow is one circuit -> severity edge of the Sankey view.
type DistributionRow struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// StartEndPair is a TML's reading on a start date joined to its reading on
// an end date.
type StartEndPair struct {
	TmlRecordID int64    `db:"tml_record_id"`
	CircuitID   string   `db:"circuit_id"`
	TmlID       string   `db:"tml_id"`
	StartRate   *float64 `db:"start_rate"`
	EndRate     *float64 `db:"end_rate"`
}

type TrackingRow struct {
	TmlRecordID int64    `json:"tmlRecordId"`
	CircuitID   string   `json:"circuitId"`
	TmlID       string   `json:"tmlId"`
	StartRate   *float64 `json:"startRate"`
	EndRate     *float64 `json:"endRate"`
	EndCategory *string  `json:"endCategory"`
}
