package users

type CreateUserRequest struct {
	Username      string `json:"username" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Role          string `json:"role" validate:"required"`
	SupervisorID  *int64 `json:"supervisorId,omitempty" validate:"omitempty,gt=0"`
	CoordenadorID *int64 `json:"coordenadorId,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserRequest struct {
	Username      string `json:"username" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role          string `json:"role" validate:"required"`
	SupervisorID  *int64 `json:"supervisorId,omitempty" validate:"omitempty,gt=0"`
	CoordenadorID *int64 `json:"coordenadorId,omitempty" validate:"omitempty,gt=0"`
}
