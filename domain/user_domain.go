package domain

import "fmt"

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetUser  = "success get user"
	MessageFailedRegister  = "failed to register user"
	MessageFailedLogin     = "failed to login"
	MessageFailedGetUser   = "failed to get user"

	ErrEmailAlreadyExists = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrUserInactive       = fmt.Errorf("%w: user is inactive", ErrForbidden)
)

type (
	RegisterRequest struct {
		Email     string  `json:"email" validate:"required,email"`
		Password  string  `json:"password" validate:"required,min=8,max=72"`
		FirstName *string `json:"first_name" validate:"omitempty,max=100"`
		LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	UserResponse struct {
		ID        string  `json:"id"`
		Email     string  `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		IsActive  bool    `json:"is_active"`
	}
)
