package events

// EventInput is the create/update payload. Start and End accept both the
// Brazilian display format and RFC 3339; the service normalizes them before
// forwarding to the backend.
type EventInput struct {
	Title          string        `json:"title" validate:"required,min=1"`
	Description    string        `json:"description"`
	Start          string        `json:"start" validate:"required"`
	End            string        `json:"end"`
	AllDay         bool          `json:"allDay"`
	URL            string        `json:"url"`
	AssignedUserID *int64        `json:"assignedUserId"`
	ExtendedProps  ExtendedProps `json:"extendedProps"`
}

// ListFilters narrows a listing request. Calendars holds the comma separated
// category filter the calendar UI sends; UserID restricts to a single owner.
type ListFilters struct {
	Calendars string
	UserID    int64
}

// ExportRequest asks for an asynchronous CSV export of the caller's visible
// events.
type ExportRequest struct {
	Calendars string `json:"calendars"`
	UserID    int64  `json:"userId"`
}
