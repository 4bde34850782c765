package security

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Los dos tipos de token firmados comparten secreto pero nunca contexto:
// el claim typ impide reusar un reset token como sesión y viceversa.
const (
	tokenTypeSession = "session"
	tokenTypeReset   = "reset"
)

// SessionClaims es el payload de un bearer token de sesión.
type SessionClaims struct {
	AccountID int64  `json:"uid"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type resetClaims struct {
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenCodec firma y valida tokens de sesión y de reset de contraseña.
type TokenCodec struct {
	secret     []byte
	sessionTTL time.Duration
	issuer     string
}

func NewTokenCodec(secret string, sessionTTL time.Duration) *TokenCodec {
	if sessionTTL <= 0 {
		sessionTTL = 48 * time.Hour
	}
	return &TokenCodec{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		issuer:     "job-board-api",
	}
}

func (c *TokenCodec) IssueSessionToken(accountID int64, email, role string) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrTokenMalformed
	}
	now := time.Now().UTC()
	claims := SessionClaims{
		AccountID: accountID,
		Email:     email,
		Role:      role,
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// ValidateSessionToken distingue entre token vencido y token malformado
// para que el caller sepa si pedir re-login o rechazar de plano.
func (c *TokenCodec) ValidateSessionToken(token string) (SessionClaims, error) {
	if len(c.secret) == 0 || strings.TrimSpace(token) == "" {
		return SessionClaims{}, ErrTokenMalformed
	}
	var claims SessionClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.TokenType != tokenTypeSession || claims.Issuer != c.issuer {
		return SessionClaims{}, ErrTokenMalformed
	}
	if claims.Subject != strconv.FormatInt(claims.AccountID, 10) {
		return SessionClaims{}, ErrTokenMalformed
	}
	return claims, nil
}

// IssueResetToken firma el email sin claim de expiración: la frescura la
// imponen el TTL del cache y la comparación de timestamps en la fila.
func (c *TokenCodec) IssueResetToken(email string) (string, time.Time, error) {
	if len(c.secret) == 0 {
		return "", time.Time{}, ErrTokenMalformed
	}
	now := time.Now().UTC()
	claims := resetClaims{
		Email:     email,
		TokenType: tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   c.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, now, nil
}

// ValidateResetToken verifica firma y edad máxima, y devuelve el email firmado.
func (c *TokenCodec) ValidateResetToken(token string, maxAge time.Duration) (string, error) {
	if len(c.secret) == 0 || strings.TrimSpace(token) == "" {
		return "", ErrTokenMalformed
	}
	var claims resetClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return "", ErrTokenMalformed
	}
	if claims.TokenType != tokenTypeReset || claims.Issuer != c.issuer {
		return "", ErrTokenMalformed
	}
	if claims.Email == "" || claims.IssuedAt == nil {
		return "", ErrTokenMalformed
	}
	if time.Now().UTC().Sub(claims.IssuedAt.Time) > maxAge {
		return "", ErrTokenExpired
	}
	return claims.Email, nil
}
