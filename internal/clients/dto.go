package clients

type CreateClientRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company       *string `json:"company,omitempty" validate:"omitempty,max=200"`
	SalespersonID *int64  `json:"salespersonId,omitempty" validate:"omitempty,gt=0"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company       *string `json:"company,omitempty" validate:"omitempty,max=200"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive prospect"`
	SalespersonID *int64  `json:"salespersonId,omitempty" validate:"omitempty,gt=0"`
}

// ListFilters narrows the client listing; empty fields are ignored.
type ListFilters struct {
	Search string
	Status string
}
