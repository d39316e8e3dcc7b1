package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/courseforge/courseforge/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned for any verification failure: bad signature,
// expired, malformed. Callers cannot tell these apart on purpose.
var ErrInvalidToken = errors.New("invalid token")

// Auth signs and verifies session tokens. Access and refresh tokens carry
// independent secrets and lifetimes; a token signed with one secret must
// never verify against the other.
type Auth struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func SetupAuth(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) Auth {
	return Auth{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken mints a short-lived token carrying email and user id.
func (a Auth) IssueAccessToken(userID uint, email string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(a.accessTTL).Unix(),
	})
	return token.SignedString(a.accessSecret)
}

// IssueRefreshToken mints a long-lived token carrying only the email.
func (a Auth) IssueRefreshToken(email string) (string, error) {
	if email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(a.refreshTTL).Unix(),
	})
	return token.SignedString(a.refreshSecret)
}

// VerifyAccessToken checks a token against the access secret and returns its
// claims. Accepts both "Bearer <token>" and a bare token string.
func (a Auth) VerifyAccessToken(tokenString string) (dto.AuthClaims, error) {
	claims, err := a.parse(tokenString, a.accessSecret)
	if err != nil {
		return dto.AuthClaims{}, err
	}

	uid, ok := claims["user_id"].(float64)
	if !ok || uid == 0 {
		return dto.AuthClaims{}, ErrInvalidToken
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return dto.AuthClaims{}, ErrInvalidToken
	}

	return dto.AuthClaims{UserID: uint(uid), Email: email}, nil
}

// VerifyRefreshToken checks a token against the refresh secret and returns
// the email it was issued for.
func (a Auth) VerifyRefreshToken(tokenString string) (string, error) {
	claims, err := a.parse(tokenString, a.refreshSecret)
	if err != nil {
		return "", err
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

func (a Auth) parse(tokenString string, secret []byte) (jwt.MapClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, ErrInvalidToken
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetCurrentUser reads the claims the middleware stored on the request.
func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthClaims, error) {
	u := ctx.Locals("user")
	claims, ok := u.(dto.AuthClaims)
	if !ok {
		return dto.AuthClaims{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password to its stored hash.
func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
