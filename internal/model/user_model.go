package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id             uuid.UUID                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string                                `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName       string                                `gorm:"type:varchar(255);not null"`
	AvatarURL      *string                               `gorm:"type:text"`
	Provider       string                                `gorm:"type:varchar(50)"`
	ProviderUserId string                                `gorm:"type:varchar(255);index"`
	ApiKeys        datatypes.JSONType[map[string]string] `gorm:"type:jsonb"`
	CreatedAt      time.Time                             `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                             `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
