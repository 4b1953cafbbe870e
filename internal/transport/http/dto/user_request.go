package dto

import (
	"github.com/ultimatetechie/ecommerce-api/internal/domain"
)

// -------- Accounts --------

// SignUpRequest carries the original wire field names. "comfirmPassword"
// is a long-standing client-side typo; renaming it would break every
// existing frontend, so it stays.
type SignUpRequest struct {
	Firstname       string `json:"firstname" validate:"required"`
	Lastname        string `json:"lastname" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"comfirmPassword" validate:"required"`
}

func (r *SignUpRequest) Validate() error {
	if err := runValidate(r); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return runValidate(r)
}

type UpdateProfileRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

func (r *UpdateProfileRequest) Validate() error {
	return runValidate(r)
}

type UpdatePasswordRequest struct {
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"comfirmPassword" validate:"required"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if err := runValidate(r); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}
	return nil
}
