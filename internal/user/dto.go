package user

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=40"`
	Photo     string `json:"photo" validate:"max=255"`
	Password  string `json:"password" validate:"required,min=8"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Pointer fields may
// be omitted to leave the stored value untouched.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Photo     *string `json:"photo,omitempty" validate:"omitempty,max=255"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
}
