package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/balbesina228/films-api/internal/config"
	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/model"
	"github.com/balbesina228/films-api/internal/repository"
	"github.com/balbesina228/films-api/internal/schema"
	"github.com/balbesina228/films-api/internal/server"
)

// Claims are the JWT claims carried by bearer tokens.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// WelcomeEnqueuer schedules the registration welcome email.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, username string) error
}

type AuthService struct {
	server *server.Server
	users  repository.UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	// welcome is nil when no job service is running.
	welcome WelcomeEnqueuer
}

func NewAuthService(s *server.Server, users repository.UserStore) (*AuthService, error) {
	if len(s.Config.Auth.SecretKey) == 0 {
		return nil, errors.New("auth secret key is not configured")
	}

	svc := &AuthService{
		server: s,
		users:  users,
		secret: []byte(s.Config.Auth.SecretKey),
		ttl:    s.Config.Auth.TokenTTL,
		now:    time.Now,
	}
	if svc.ttl <= 0 {
		svc.ttl = config.DefaultTokenTTL
	}
	if s.Job != nil {
		svc.welcome = s.Job
	}
	return svc, nil
}

// Register creates a user with a bcrypt-hashed password and queues the
// welcome email. Failing to queue the email does not fail registration.
func (s *AuthService) Register(ctx context.Context, req *schema.RegisterRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	log := s.server.Logger.With().Str("user_id", u.UUID.String()).Logger()
	log.Info().Str("username", u.Username).Msg("user registered")

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, u.Email, u.Username); err != nil {
			log.Error().Err(err).Msg("failed to enqueue welcome email")
		}
	}

	return u, nil
}

// Login checks the credentials and returns a signed bearer token. Unknown
// users and wrong passwords produce the same 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return "", invalidCredentials()
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", invalidCredentials()
	}

	return s.IssueToken(u)
}

// IssueToken signs an HS256 token for u valid for the configured TTL.
func (s *AuthService) IssueToken(u *model.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:   u.UUID.String(),
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.UUID.String(),
			Issuer:    config.ServiceName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, issuer and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.ServiceName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func invalidCredentials() error {
	return errs.NewUnauthorizedError("Invalid username or password", true)
}
