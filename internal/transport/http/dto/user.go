package dto

import "wedsite/internal/domain/models"

type UserRegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Role     string `json:"role" validate:"required,oneof=organizer superadmin"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) models.User {
	return models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         models.Role(input.Role),
	}
}
