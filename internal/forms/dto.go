package forms

import "time"

// FormInput is the create/update payload for form definitions.
type FormInput struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Status        string    `json:"status"`
	AssignedUsers []int64   `json:"assignedUsers"`
	Sections      []Section `json:"sections"`
}

// ResponseInput is the draft/submit payload for a form response.
type ResponseInput struct {
	FormID    int64          `json:"formId"`
	Responses map[string]any `json:"responses"`
}
