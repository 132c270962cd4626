package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campusroom/config"
	"campusroom/shared/constant"
	"campusroom/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrMissingBearer = errors.New("authorization header must carry a bearer token")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	bearerScheme = "Bearer"
	clockSkew    = 30 * time.Second
)

// Claims identify a campus member. Role is one of student, lecturer or staff.
type Claims struct {
	UserID     string    `json:"user_id"`
	NationalID string    `json:"national_id"`
	Role       string    `json:"role"`
	TokenID    string    `json:"token_id"`
	Type       TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(userID, nationalID, role string) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(refreshToken string) (*TokenPair, error)
}

type signingKey struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer string
	keys   map[TokenType]signingKey
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]signingKey{
			AccessToken: {
				secret: []byte(cfg.JWT.AccessSecret),
				ttl:    time.Duration(cfg.JWT.AccessExpireMin) * time.Minute,
			},
			RefreshToken: {
				secret: []byte(cfg.JWT.RefreshSecret),
				ttl:    time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute,
			},
		},
	}
}

func (s *Service) key(tokenType TokenType) (signingKey, error) {
	key, ok := s.keys[tokenType]
	if !ok {
		return signingKey{}, fmt.Errorf("unknown token type: %s", tokenType)
	}

	return key, nil
}

func (s *Service) GenerateTokenPair(userID, nationalID, role string) (*TokenPair, error) {
	now := timezone.Now()
	pair := &TokenPair{TokenType: bearerScheme}

	for tokenType, target := range map[TokenType]*string{
		AccessToken:  &pair.AccessToken,
		RefreshToken: &pair.RefreshToken,
	} {
		signed, err := s.sign(Claims{UserID: userID, NationalID: nationalID, Role: role, Type: tokenType}, now)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s token: %w", tokenType, err)
		}

		*target = signed
	}

	pair.ExpiresIn = int64(s.keys[AccessToken].ttl / time.Second)

	return pair, nil
}

func (s *Service) sign(claims Claims, issuedAt time.Time) (string, error) {
	key, err := s.key(claims.Type)
	if err != nil {
		return constant.Empty, err
	}

	claims.TokenID = uuid.NewString()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        claims.TokenID,
		Issuer:    s.issuer,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(key.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken accepts only HS256 tokens from this issuer whose type matches
// tokenType.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	key, err := s.key(tokenType)
	if err != nil {
		return nil, err
	}

	var claims Claims

	_, err = jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (any, error) { return key.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(timezone.Now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType:
		return nil, ErrInvalidClaim
	}

	return &claims, nil
}

func (s *Service) RefreshTokens(refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(claims.UserID, claims.NationalID, claims.Role)
}

// ExtractTokenFromHeader returns the credentials of a "Bearer <token>"
// Authorization header. The scheme is case-insensitive.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return constant.Empty, ErrMissingBearer
	}

	token = strings.TrimSpace(token)
	if token == constant.Empty {
		return constant.Empty, ErrMissingBearer
	}

	return token, nil
}
