package dto

import (
	"github.com/google/uuid"
)

type UserDTO struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

type LoginURLResponse struct {
	URL string `json:"url"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

type UpdateApiKeysRequest struct {
	ApiKeys map[string]string `json:"api_keys" validate:"required"`
}

type ApiKeysResponse struct {
	ApiKeys map[string]string `json:"api_keys"`
}

type ApiKeysConfiguredResponse struct {
	Configured bool     `json:"configured"`
	Missing    []string `json:"missing_keys"`
}
