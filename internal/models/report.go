package models

import "time"

// StatusReceived is the status assigned to every new report. Later statuses
// are free-form strings set by administrators; no state machine is enforced.
const StatusReceived = "Received"

// DefaultLocation is the placeholder recorded at creation. Real geolocation
// capture is a client concern this API does not implement.
const DefaultLocation = "Lat: 0, Lon: 0"

// Report is a citizen-submitted civic-issue record.
type Report struct {
	ID            string     `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	ReporterEmail string     `db:"reporter_email" json:"reporterEmail"`
	Status        string     `db:"status" json:"status"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time `db:"updated_at" json:"updatedAt,omitempty"`
	Remarks       string     `db:"remarks" json:"remarks"`
	Location      string     `db:"location" json:"location"`
}

// StatusUpdate is the partial patch applied by a status change. All other
// report fields are untouched by an update.
type StatusUpdate struct {
	Status    string
	Remarks   string
	UpdatedAt time.Time
}
