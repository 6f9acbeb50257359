package events

import "time"

// Calendar categories used by the scheduling views.
const (
	CalendarMeeting  = "Meeting"
	CalendarPersonal = "Personal"
	CalendarBusiness = "Business"
	CalendarHoliday  = "Holiday"
	CalendarETC      = "ETC"
)

// Event statuses. The backend historically stored both the English and the
// Portuguese spellings, so stats count them together.
const (
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
	StatusFinalizado = "Finalizado"
	StatusUrgent     = "Urgent"
	StatusUrgente    = "Urgente"
)

// ExtendedProps carries the calendar metadata attached to every event.
type ExtendedProps struct {
	Calendar     string  `json:"calendar"`
	Location     string  `json:"location,omitempty"`
	Status       string  `json:"status,omitempty"`
	Guests       []int64 `json:"guests,omitempty"`
	ClienteID    *int64  `json:"clienteId,omitempty"`
	Cliente      string  `json:"cliente,omitempty"`
	ClienteCode  string  `json:"clienteCode,omitempty"`
	AssignedUser *int64  `json:"assignedUser,omitempty"`
}

// Event is a calendar entry as exchanged with the backend. Start and End are
// RFC 3339 timestamps.
type Event struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Start          time.Time     `json:"start"`
	End            time.Time     `json:"end"`
	AllDay         bool          `json:"allDay"`
	URL            string        `json:"url,omitempty"`
	UserID         int64         `json:"userId"`
	AssignedUserID *int64        `json:"assignedUserId,omitempty"`
	ExtendedProps  ExtendedProps `json:"extendedProps"`
}

// Owner reports the user the event ultimately belongs to: the assignee when
// one is set, the creator otherwise.
func (e Event) Owner() int64 {
	if e.AssignedUserID != nil {
		return *e.AssignedUserID
	}
	return e.UserID
}

// Record exposes the event fields rules may condition on.
func (e Event) Record() map[string]any {
	return map[string]any{
		"id":     e.ID,
		"userId": e.Owner(),
	}
}

// Stats aggregates the counters shown on the per-user dashboard card.
type Stats struct {
	Total      int            `json:"total"`
	InProgress int            `json:"inProgress"`
	Done       int            `json:"done"`
	Urgent     int            `json:"urgent"`
	ByCategory map[string]int `json:"byCategory"`
	Upcoming   int            `json:"upcomingEvents"`
}
