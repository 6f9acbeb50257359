// Package forms covers dynamic form definitions and their responses: CRUD
// against the backend plus the client-side validation and progress rules the
// form builder relies on.
package forms

import "time"

// Form statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusDraft     = "draft"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// Question types. Choice types require a non-empty option list.
const (
	QuestionText     = "text"
	QuestionTextarea = "textarea"
	QuestionNumber   = "number"
	QuestionDate     = "date"
	QuestionSingle   = "single"
	QuestionMultiple = "multiple"
	QuestionSelect   = "select"
)

// Question is a single field inside a section.
type Question struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// IsChoice reports whether the question type carries an option list.
func (q Question) IsChoice() bool {
	switch q.Type {
	case QuestionSingle, QuestionMultiple, QuestionSelect:
		return true
	}
	return false
}

// Section groups questions under a heading.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Form is a form definition as exchanged with the backend.
type Form struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Status        string    `json:"status"`
	AssignedUsers []int64   `json:"assignedUsers"`
	Sections      []Section `json:"sections"`
	CreatedBy     int64     `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// IsActive reports whether the form accepts responses at the given instant.
func (f Form) IsActive(now time.Time) bool {
	return f.Status == StatusActive && !now.Before(f.StartDate) && !now.After(f.EndDate)
}

// QuestionCount returns the total number of questions across sections.
func (f Form) QuestionCount() int {
	total := 0
	for _, s := range f.Sections {
		total += len(s.Questions)
	}
	return total
}

// Response holds a user's answers to a form, keyed by question id.
type Response struct {
	ID          int64          `json:"id"`
	FormID      int64          `json:"formId"`
	UserID      int64          `json:"userId"`
	Status      string         `json:"status"`
	Responses   map[string]any `json:"responses"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

// FormStats aggregates the response counters for a form.
type FormStats struct {
	FormID       int64   `json:"formId"`
	Assigned     int     `json:"assigned"`
	Submitted    int     `json:"submitted"`
	Drafts       int     `json:"drafts"`
	CompletionPC float64 `json:"completionRate"`
}
