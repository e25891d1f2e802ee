package models

// BookingInput is the customer-facing appointment request. All fields are
// required; there is no semantic validation of email/phone beyond presence.
type BookingInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Description string `json:"description" binding:"required"`
	DateTime    string `json:"dateTime" binding:"required"`
}

// ManualEventInput is an administrator-created calendar event with free-form
// bounds. Contact fields are optional and folded into the event description.
type ManualEventInput struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	StartDateTime  string `json:"startDateTime" binding:"required"`
	EndDateTime    string `json:"endDateTime" binding:"required"`
	TechnicianName string `json:"technicianName"`
	ClientName     string `json:"clientName"`
	ClientEmail    string `json:"clientEmail"`
	ClientPhone    string `json:"clientPhone"`
}

// BlockInput requests blocking of the 1-hour slot starting at DateTime.
type BlockInput struct {
	DateTime string `json:"dateTime" binding:"required"`
	Reason   string `json:"reason"`
}

// UnblockInput removes a blocking marker by its event id.
type UnblockInput struct {
	EventID string `json:"eventId" binding:"required"`
}

// AdminLoginInput carries the admin portal password.
type AdminLoginInput struct {
	Password string `json:"password" binding:"required"`
}
