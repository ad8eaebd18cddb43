package mapper

import (
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	keys := map[string]string{}
	for k, v := range u.ApiKeys.Data() {
		keys[k] = v
	}

	return &entity.User{
		Id:             u.Id,
		Email:          u.Email,
		FullName:       u.FullName,
		AvatarURL:      u.AvatarURL,
		Provider:       u.Provider,
		ProviderUserId: u.ProviderUserId,
		ApiKeys:        keys,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	keys := u.ApiKeys
	if keys == nil {
		keys = map[string]string{}
	}

	return &model.User{
		Id:             u.Id,
		Email:          u.Email,
		FullName:       u.FullName,
		AvatarURL:      u.AvatarURL,
		Provider:       u.Provider,
		ProviderUserId: u.ProviderUserId,
		ApiKeys:        datatypes.NewJSONType(keys),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
