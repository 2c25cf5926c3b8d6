package handler

import "time"

// messageResponse is the standard error envelope returned on all 4xx/5xx responses.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type createCashierRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type deleteCashierRequest struct {
	ID string `json:"id" validate:"required"`
}

// profileResponse is the transport view of a cashier profile. Kept separate
// from the domain type so the JSON contract is not coupled to internal
// changes.
type profileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type createCashierResponse struct {
	Profile profileResponse `json:"profile"`
}

type deleteCashierResponse struct {
	OK bool `json:"ok"`
}
