package service

import (
	"context"
	"testing"
	"time"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/secret"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, f *assistantFixture) *entity.User {
	t.Helper()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     "teacher@example.com",
		FullName:  "Ada Teacher",
		ApiKeys:   map[string]string{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.factory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return user
}

func TestMaskApiKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "short", want: "short"},
		{in: "sk-12345", want: "sk-12345"},
		{in: "sk-1234567890", want: "sk-12345*****"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskApiKey(tt.in), tt.in)
	}
}

func TestUserService_ApiKeys(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	sealer, err := secret.NewSealer("test-secret")
	require.NoError(t, err)
	svc := NewUserService(f.factory, sealer, f.log)
	user := newTestUser(t, f)

	configured, err := svc.CheckApiKeysConfigured(ctx, user.Id)
	require.NoError(t, err)
	assert.False(t, configured.Configured)
	assert.Equal(t, entity.RequiredApiKeys, configured.Missing)

	require.NoError(t, svc.UpdateApiKeys(ctx, user.Id, &dto.UpdateApiKeysRequest{ApiKeys: map[string]string{
		"openai": "sk-openai-abcdef",
		"gemini": "AIza-gemini-123",
	}}))

	stored, err := f.factory.NewUnitOfWork(ctx).UserRepository().FindById(ctx, user.Id)
	require.NoError(t, err)
	assert.NotEqual(t, "sk-openai-abcdef", stored.ApiKeys["openai"], "keys are sealed at rest")

	keys, err := svc.GetApiKeys(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"openai": "sk-opena********",
		"gemini": "AIza-gem*******",
	}, keys.ApiKeys)

	configured, err = svc.CheckApiKeysConfigured(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"sunoai", "mongodb"}, configured.Missing)

	require.NoError(t, svc.UpdateApiKeys(ctx, user.Id, &dto.UpdateApiKeysRequest{ApiKeys: map[string]string{"sunoai": "suno-1"}}))
	keys, err = svc.GetApiKeys(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"sunoai": "suno-1"}, keys.ApiKeys, "update replaces the key set")
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	f := newAssistantFixture()
	sealer, err := secret.NewSealer("test-secret")
	require.NoError(t, err)
	svc := NewUserService(f.factory, sealer, f.log)
	user := newTestUser(t, f)

	avatar := "https://example.com/a.png"
	updated, err := svc.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{AvatarURL: &avatar})
	require.NoError(t, err)
	assert.Equal(t, "Ada Teacher", updated.FullName)
	assert.Equal(t, &avatar, updated.AvatarURL)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
