package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/partnerconnector/internal/cache"
	"github.com/partnerconnector/internal/config"
	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/models"
	"github.com/partnerconnector/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// PartnerClaims are the partner token claims.
type PartnerClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterPartnerInput carries a partner signup.
type RegisterPartnerInput struct {
	Email           string
	Password        string
	DisplayName     string
	CompanyName     string
	Phone           string
	ParentPartnerID *uint
}

// PartnerAuthService authenticates and registers partner accounts.
type PartnerAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewPartnerAuthService creates a partner auth service.
func NewPartnerAuthService(cfg *config.Config, userRepo repository.UserRepository) *PartnerAuthService {
	return &PartnerAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// Register creates a partner account. A referred partner sits one level below
// its parent; the tree depth is capped, deeper signups get no parent link to
// the commission scheme.
func (s *PartnerAuthService) Register(input RegisterPartnerInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	level := 1
	var parentID *uint
	if input.ParentPartnerID != nil && *input.ParentPartnerID != 0 {
		parent, err := s.userRepo.GetByID(*input.ParentPartnerID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.Status != constants.UserStatusActive {
			return nil, ErrParentInvalid
		}
		if parent.PartnerLevel >= constants.MaxPartnerLevel {
			return nil, ErrPartnerLevelLimit
		}
		level = parent.PartnerLevel + 1
		parentID = &parent.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:           email,
		PasswordHash:    string(hash),
		DisplayName:     strings.TrimSpace(input.DisplayName),
		CompanyName:     strings.TrimSpace(input.CompanyName),
		Phone:           strings.TrimSpace(input.Phone),
		Status:          constants.UserStatusActive,
		ParentPartnerID: parentID,
		PartnerLevel:    level,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	logger.Infow("partner_registered",
		"user_id", user.ID,
		"partner_level", user.PartnerLevel,
		"has_parent", parentID != nil,
	)
	return user, nil
}

// Login authenticates a partner and issues a token. Repeated failures from the
// same account are throttled through redis.
func (s *PartnerAuthService) Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.checkLoginRate(ctx, email); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		s.recordLoginFailure(ctx, email)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordLoginFailure(ctx, email)
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logger.Warnw("partner_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	return user, token, expiresAt, nil
}

// GenerateJWT signs a partner token.
func (s *PartnerAuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.UserJWT.ExpireHours) * time.Hour)

	claims := PartnerClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a partner token.
func (s *PartnerAuthService) ParseJWT(tokenString string) (*PartnerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &PartnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*PartnerClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func (s *PartnerAuthService) checkLoginRate(ctx context.Context, email string) error {
	limit := s.cfg.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 || !cache.Enabled() {
		return nil
	}
	var count int64
	key := loginAttemptKey(email)
	if _, err := cache.GetJSON(ctx, key, &count); err != nil {
		logger.Warnw("login_rate_read_failed", "error", err)
		return nil
	}
	if count >= int64(limit.MaxAttempts) {
		return ErrTooManyAttempts
	}
	return nil
}

func (s *PartnerAuthService) recordLoginFailure(ctx context.Context, email string) {
	limit := s.cfg.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 || !cache.Enabled() {
		return
	}
	window := time.Duration(limit.WindowSeconds) * time.Second
	if window <= 0 {
		window = 5 * time.Minute
	}
	if _, err := cache.IncrWithTTL(ctx, loginAttemptKey(email), window); err != nil {
		logger.Warnw("login_rate_record_failed", "error", err)
	}
}

func loginAttemptKey(email string) string {
	return fmt.Sprintf("login:attempts:%s", email)
}
