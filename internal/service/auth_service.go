package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"blogsapi/internal/entity"
	"blogsapi/internal/repository"
	"blogsapi/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

// AuthService runs the login and refresh lifecycle. Every successful call
// inserts exactly one session row; rows are never updated.
type AuthService struct {
	users        repository.UserRepository
	sessions     repository.SessionRepository
	securityLogs repository.SecurityLogRepository

	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	metrics      AuthMetrics
	clock        Clock
	config       AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	metrics AuthMetrics,
	clock Clock,
	config AuthConfig,
) *AuthService {
	return &AuthService{
		users:        users,
		sessions:     sessions,
		securityLogs: securityLogs,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		metrics:      metrics,
		clock:        clock,
		config:       config,
	}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.FindByLogin(ctx, utils.NormalizeEmail(identifier), identifier)
	if err != nil {
		s.observeLogin(outcomeError)
		return nil, err
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.logSecurity(ctx, nil, input.IPAddress, entity.LoginFailed, map[string]any{"user": identifier})
		s.observeLogin(outcomeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.logSecurity(ctx, &user.ID, input.IPAddress, entity.LoginFailed, map[string]any{"user": identifier})
		s.observeLogin(outcomeInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	refreshToken, err := utils.NewOpaqueToken(s.config.RefreshTokenBytes)
	if err != nil {
		s.observeLogin(outcomeError)
		return nil, err
	}

	pair, err := s.createSession(ctx, user, refreshToken, nil)
	if err != nil {
		s.observeLogin(outcomeError)
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, input.IPAddress, entity.LoginSuccess, nil)
	s.observeLogin(outcomeSuccess)
	return pair, nil
}

// Refresh mints a new access token for the latest session holding
// refreshToken. The lookup is not scoped to a caller, and two concurrent
// refreshes of the same token may both succeed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, ipAddress *string) (*TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, ErrInvalidInput
	}

	hash := utils.HashToken(refreshToken)
	session, err := s.sessions.FindLatestByRefreshHash(ctx, hash)
	if err != nil {
		s.observeRefresh(outcomeError)
		return nil, err
	}
	if session == nil {
		s.observeRefresh(outcomeNotFound)
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.RefreshDeadline(s.refreshWindow())) {
		s.rejectRefresh(ctx, session, ipAddress, outcomeExpired)
		return nil, ErrSessionExpired
	}

	if s.config.RotateRefreshToken {
		rotated, err := s.sessions.HasSuccessor(ctx, hash)
		if err != nil {
			s.observeRefresh(outcomeError)
			return nil, err
		}
		if rotated {
			s.rejectRefresh(ctx, session, ipAddress, outcomeRotated)
			return nil, ErrRefreshTokenRotated
		}
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		s.observeRefresh(outcomeError)
		return nil, err
	}
	if user == nil {
		s.rejectRefresh(ctx, session, ipAddress, outcomeNotFound)
		return nil, ErrSessionNotFound
	}

	nextRefreshToken := refreshToken
	var rotatedFrom *string
	if s.config.RotateRefreshToken {
		nextRefreshToken, err = utils.NewOpaqueToken(s.config.RefreshTokenBytes)
		if err != nil {
			s.observeRefresh(outcomeError)
			return nil, err
		}
		rotatedFrom = &hash
	}

	pair, err := s.createSession(ctx, user, nextRefreshToken, rotatedFrom)
	if err != nil {
		s.observeRefresh(outcomeError)
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.TokenRefreshed, map[string]any{"previous_session_id": session.ID.String()})
	s.observeRefresh(outcomeSuccess)
	return pair, nil
}

func (s *AuthService) createSession(
	ctx context.Context,
	user *entity.User,
	refreshToken string,
	rotatedFrom *string,
) (*TokenPair, error) {
	now := s.now()
	accessToken, expiresAt, err := s.accessTokens.IssueAccessToken(*user, now)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		UserID:           user.ID,
		TokenHash:        utils.HashToken(accessToken),
		RefreshTokenHash: utils.HashToken(refreshToken),
		RotatedFromHash:  rotatedFrom,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *AuthService) rejectRefresh(ctx context.Context, session *entity.Session, ipAddress *string, outcome string) {
	_ = s.logSecurity(ctx, &session.UserID, ipAddress, entity.RefreshRejected, map[string]any{
		"session_id": session.ID.String(),
		"reason":     outcome,
	})
	s.observeRefresh(outcome)
}

func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) error {
	if s.securityLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
		CreatedAt: s.now(),
	}
	return s.securityLogs.Log(ctx, log)
}

func (s *AuthService) observeLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(outcome)
	}
}

func (s *AuthService) observeRefresh(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveRefresh(outcome)
	}
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now().UTC()
	}
	return s.clock.Now()
}

func (s *AuthService) refreshWindow() time.Duration {
	if s.config.RefreshWindow > 0 {
		return s.config.RefreshWindow
	}
	return DefaultRefreshWindow
}
