package dto

// CreateReportRequest describes the payload for submitting a report.
type CreateReportRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	ReporterEmail string `json:"reporterEmail" validate:"required"`
}

// UpdateStatusRequest describes the payload for a status change. Remarks are
// optional and default to an empty string.
type UpdateStatusRequest struct {
	Status  string `json:"status" validate:"required"`
	Remarks string `json:"remarks"`
}
