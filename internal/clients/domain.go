package clients

import "time"

// Client is a customer record as served by the backend.
type Client struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Company       *string   `json:"company,omitempty"`
	Status        string    `json:"status"`
	SalespersonID *int64    `json:"salespersonId,omitempty"`
	CoordenadorID *int64    `json:"coordenadorId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Record exposes the fields conditioned ability rules check against.
func (c Client) Record() map[string]any {
	record := map[string]any{"id": c.ID}
	if c.SalespersonID != nil {
		record["salespersonId"] = *c.SalespersonID
	}
	return record
}
