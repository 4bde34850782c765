package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/cache"
	"github.com/bicosteve/job-board-api/internal/domain"
	"github.com/bicosteve/job-board-api/internal/repository"
	"github.com/bicosteve/job-board-api/internal/security"
)

var (
	ErrUserExists           = errors.New("user already exists")
	ErrUserDoesNotExist     = errors.New("user does not exist")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidLoginAttempt  = errors.New("invalid login attempt")
	ErrVerificationFailed   = errors.New("verification failed")
	ErrInvalidPasswordReset = errors.New("invalid password reset")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordHash         = errors.New("password hash failed")
	ErrStore                = errors.New("store operation failed")
	ErrDatabase             = errors.New("database operation failed")
)

// AuthCache es la vista del adaptador volátil que necesita el orquestador.
type AuthCache interface {
	PutVerificationCode(ctx context.Context, email, code string) error
	RedeemVerificationCode(ctx context.Context, email, submitted string) (bool, error)
	PutResetToken(ctx context.Context, email string, rec cache.ResetRecord) error
	RedeemResetToken(ctx context.Context, email, submitted string) (string, error)
}

// AuthService orquesta registro, verificación, login y reset de contraseña
// coordinando hasher, codec y los dos stores. No guarda estado entre requests.
type AuthService struct {
	logger      *zap.Logger
	accounts    repository.AccountRepository
	cache       AuthCache
	hasher      security.PasswordHasher
	codec       *security.TokenCodec
	resetMaxAge time.Duration
}

func NewAuthService(
	logger *zap.Logger,
	accounts repository.AccountRepository,
	authCache AuthCache,
	hasher security.PasswordHasher,
	codec *security.TokenCodec,
	resetMaxAge time.Duration,
) *AuthService {
	if resetMaxAge <= 0 {
		resetMaxAge = time.Hour
	}
	return &AuthService{
		logger:      logger,
		accounts:    accounts,
		cache:       authCache,
		hasher:      hasher,
		codec:       codec,
		resetMaxAge: resetMaxAge,
	}
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

type RegisterResult struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

type ResetTokenResult struct {
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

// Register crea la cuenta sin verificar y devuelve el código de verificación.
// El envío del código es problema del caller: acá no hay canal de correo.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	if input.Password != input.ConfirmPassword {
		return RegisterResult{}, ErrPasswordMismatch
	}

	email := normalizeEmail(input.Email)
	role := input.Role
	if role == "" {
		role = domain.RoleApplicant
	}

	_, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Warn("register on existing account", zap.String("email", email))
		return RegisterResult{}, ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrPasswordHash, err)
	}

	username := usernameFromEmail(email)
	rows, err := s.accounts.Insert(ctx, email, username, hash, role, domain.StatusUnverified)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return RegisterResult{}, fmt.Errorf("%w: insert affected no rows", ErrDatabase)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	// La cuenta ya quedó persistida: si el cache falla no se revierte,
	// el caller decide si reintenta el envío del código.
	if err := s.cache.PutVerificationCode(ctx, email, code); err != nil {
		s.logger.Error("store verification code failed", zap.String("email", email), zap.Error(err))
		return RegisterResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.logger.Info("account registered", zap.String("email", email), zap.String("role", role))
	return RegisterResult{Email: email, VerificationCode: code}, nil
}

// VerifyAccount consume el código y promueve la cuenta a verificada.
func (s *AuthService) VerifyAccount(ctx context.Context, email, submittedCode string) error {
	email = normalizeEmail(email)

	ok, err := s.cache.RedeemVerificationCode(ctx, email, submittedCode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	if !ok {
		s.logger.Warn("verification code rejected", zap.String("email", email))
		return ErrVerificationFailed
	}

	rows, err := s.accounts.SetStatus(ctx, email, domain.StatusVerified)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return fmt.Errorf("%w: status update affected no rows", ErrDatabase)
	}

	s.logger.Info("account verified", zap.String("email", email))
	return nil
}

// Login valida credenciales y emite un token de sesión. Email desconocido y
// contraseña equivocada devuelven el mismo error para no enumerar cuentas.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("login for unknown email", zap.String("email", email))
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	if account.Status != domain.StatusVerified {
		s.logger.Warn("login on unverified account", zap.String("email", email))
		return "", ErrInvalidLoginAttempt
	}
	if account.IsDeactivated {
		s.logger.Warn("login on deactivated account", zap.String("email", email))
		return "", ErrInvalidLoginAttempt
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.Warn("login with wrong password", zap.String("email", email))
		return "", ErrInvalidCredentials
	}

	token, err := s.codec.IssueSessionToken(account.ID, account.Email, account.Role)
	if err != nil {
		return "", fmt.Errorf("issue session token: %w", err)
	}

	s.logger.Info("login success", zap.String("email", email))
	return token, nil
}

// RequestPasswordReset emite un reset token y lo guarda en ambos stores:
// la copia volátil manda, la durable sobrevive a una pérdida del cache.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (ResetTokenResult, error) {
	email = normalizeEmail(email)

	token, issuedAt, err := s.codec.IssueResetToken(email)
	if err != nil {
		return ResetTokenResult{}, fmt.Errorf("issue reset token: %w", err)
	}

	rec := cache.ResetRecord{Token: token, IssuedAt: issuedAt}
	if err := s.cache.PutResetToken(ctx, email, rec); err != nil {
		return ResetTokenResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	rows, err := s.accounts.SetResetToken(ctx, email, token)
	if err != nil {
		return ResetTokenResult{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return ResetTokenResult{}, fmt.Errorf("%w: reset token update affected no rows", ErrDatabase)
	}

	s.logger.Info("reset token issued", zap.String("email", email))
	return ResetTokenResult{Token: token, IssuedAt: issuedAt}, nil
}

// ResetPassword redime el token, primero contra el cache y si el cache no
// tiene la clave contra la copia durable, y recién entonces cambia el hash.
func (s *AuthService) ResetPassword(ctx context.Context, submittedToken, newPassword string) error {
	email, err := s.codec.ValidateResetToken(submittedToken, s.resetMaxAge)
	if err != nil {
		s.logger.Warn("reset token rejected by codec", zap.Error(err))
		return ErrInvalidPasswordReset
	}

	redeemed, err := s.cache.RedeemResetToken(ctx, email, submittedToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	if redeemed == "" {
		if err := s.redeemFromFallback(ctx, email, submittedToken); err != nil {
			return err
		}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordHash, err)
	}

	// SetPasswordHash limpia también la copia durable del token.
	rows, err := s.accounts.SetPasswordHash(ctx, email, hash)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return fmt.Errorf("%w: password update affected no rows", ErrDatabase)
	}

	s.logger.Info("password reset", zap.String("email", email))
	return nil
}

// redeemFromFallback cubre la pérdida total del cache: la fila durable no
// tiene TTL, así que la frescura se juzga contra updated_at.
func (s *AuthService) redeemFromFallback(ctx context.Context, email, submittedToken string) error {
	stored, updatedAt, err := s.accounts.GetResetToken(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn("no fallback reset token", zap.String("email", email))
			return ErrInvalidPasswordReset
		}
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if stored != submittedToken {
		s.logger.Warn("fallback reset token mismatch", zap.String("email", email))
		return ErrInvalidPasswordReset
	}
	if time.Now().UTC().Sub(updatedAt) >= cache.ResetFreshness {
		s.logger.Warn("fallback reset token stale", zap.String("email", email))
		return ErrInvalidPasswordReset
	}
	return nil
}

// Profile devuelve la cuenta del principal autenticado.
func (s *AuthService) Profile(ctx context.Context, accountID int64) (domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, ErrUserDoesNotExist
		}
		return domain.Account{}, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return account, nil
}

// Deactivate marca o desmarca una cuenta como desactivada.
func (s *AuthService) Deactivate(ctx context.Context, email string, deactivated bool) error {
	email = normalizeEmail(email)
	rows, err := s.accounts.SetDeactivated(ctx, email, deactivated)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if rows < 1 {
		return ErrUserDoesNotExist
	}
	s.logger.Info("account deactivation updated", zap.String("email", email), zap.Bool("deactivated", deactivated))
	return nil
}

// generateVerificationCode produce un código de 6 dígitos en 100000..999999.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
