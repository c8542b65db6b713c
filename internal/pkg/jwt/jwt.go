package jwt

import (
	"errors"
	"time"

	"github.com/attendly/leave-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateQuickActionToken(leaveRequestID string) (token string, err error)
	ValidateQuickActionToken(tokenString string) (leaveRequestID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey             string
	accessTokenExpiration string
	quickActionExpiration string
	tokenAuth             *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpiration string, quickActionExpiration string) Service {
	return &JWTService{
		secretKey:             secretKey,
		accessTokenExpiration: accessTokenExpiration,
		quickActionExpiration: quickActionExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateQuickActionToken mints the token embedded in approve/reject email
// links. It carries only the leave request id so it can be verified without a
// database lookup.
func (j *JWTService) GenerateQuickActionToken(leaveRequestID string) (token string, err error) {
	expDuration, err := time.ParseDuration(j.quickActionExpiration)
	if err != nil {
		return "", err
	}
	now := time.Now()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"leave_request_id": leaveRequestID,
		"type":             "quick_action",
		"iat":              now.Unix(),
		"exp":              now.Add(expDuration).Unix(),
	})
	return tokenString, err
}

// ValidateQuickActionToken verifies signature and expiry and returns the leave
// request id the token was minted for. Expired tokens are reported separately
// from malformed or tampered ones so the handler can render a distinct page.
func (j *JWTService) ValidateQuickActionToken(tokenString string) (leaveRequestID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		if jwtauth.ErrorReason(err) == jwtauth.ErrExpired {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "quick_action" {
		return "", ErrTokenInvalid
	}

	idVal, ok := token.Get("leave_request_id")
	if !ok {
		return "", ErrTokenInvalid
	}

	leaveRequestID, ok = idVal.(string)
	if !ok || leaveRequestID == "" {
		return "", ErrTokenInvalid
	}

	return leaveRequestID, nil
}
