package entity

import (
	"time"

	"github.com/google/uuid"
)

// API key names a user can store on their profile.
const (
	ApiKeyOpenAI  = "openai"
	ApiKeyGemini  = "gemini"
	ApiKeySunoAI  = "sunoai"
	ApiKeyMongoDB = "mongodb"
)

// RequiredApiKeys are the keys reported by the "configured" check.
var RequiredApiKeys = []string{ApiKeyOpenAI, ApiKeyGemini, ApiKeySunoAI, ApiKeyMongoDB}

type User struct {
	Id             uuid.UUID
	Email          string
	FullName       string
	AvatarURL      *string
	Provider       string
	ProviderUserId string
	// ApiKeys holds sealed values; use the user service to read plaintext.
	ApiKeys   map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}
