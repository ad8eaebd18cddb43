package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"lessoncraft-be/internal/dto"
	"lessoncraft-be/internal/entity"
	"lessoncraft-be/internal/pkg/logger"
	"lessoncraft-be/internal/pkg/serverutils"
	"lessoncraft-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthModule   = "oauth"
	googleUserURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTTL      = 24 * time.Hour
)

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
}

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	JwtSecret    string
}

type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	jwtSecret  string
	userInfo   string
	logger     logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, cfg OAuthConfig, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory: uowFactory,
		googleConf: conf,
		jwtSecret:  cfg.JwtSecret,
		userInfo:   googleUserURL,
		logger:     log,
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", ErrUnsupportedOAuth
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, ErrUnsupportedOAuth
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn(oauthModule, "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.NewUnauthorizedError("code exchange failed")
	}

	profile, err := s.fetchGoogleUser(ctx, s.googleConf.Client(ctx, token))
	if err != nil {
		return nil, err
	}

	user, err := s.upsertUser(ctx, profile)
	if err != nil {
		return nil, err
	}

	signed, err := serverutils.GenerateToken(s.jwtSecret, user.Id, tokenTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info(oauthModule, "User logged in", map[string]interface{}{
		"user_id":  user.Id.String(),
		"provider": provider,
	})
	return &dto.LoginResponse{
		AccessToken: signed,
		User:        toUserDTO(user),
	}, nil
}

func (s *oauthService) fetchGoogleUser(ctx context.Context, client *http.Client) (*googleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfo, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed with status %d", resp.StatusCode)
	}

	var profile googleUser
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, fmt.Errorf("parse user info: %w", err)
	}
	if profile.Email == "" {
		return nil, serverutils.NewUnauthorizedError("google account has no email")
	}
	return &profile, nil
}

// upsertUser finds the user by email, creating it on first login, and keeps
// the provider identity and avatar in sync.
func (s *oauthService) upsertUser(ctx context.Context, profile *googleUser) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var avatar *string
	if profile.Picture != "" {
		avatar = &profile.Picture
	}

	if user == nil {
		user = &entity.User{
			Id:             uuid.New(),
			Email:          profile.Email,
			FullName:       profile.Name,
			AvatarURL:      avatar,
			Provider:       "google",
			ProviderUserId: profile.ID,
			ApiKeys:        map[string]string{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := uow.UserRepository().Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Provider = "google"
	user.ProviderUserId = profile.ID
	if avatar != nil {
		user.AvatarURL = avatar
	}
	user.UpdatedAt = now
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
