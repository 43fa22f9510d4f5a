package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/config"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrCredenciales is returned when a device id/secret pair does not match.
var ErrCredenciales = errors.New("credenciales de dispositivo invalidas")

// AuthService bootstraps anonymous sessions. Each device holds an id/secret
// pair; the id is the owner id stamped on everything the device creates.
type AuthService interface {
	// SesionAnonima resumes the session of a known device or creates a new one.
	// It is idempotent for a given id/secret pair.
	SesionAnonima(ctx context.Context, req dto.SesionAnonimaRequest) (*dto.SesionResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.SesionResponse, error)
}

type authService struct {
	repo repository.SesionAnonimaRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.SesionAnonimaRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) SesionAnonima(ctx context.Context, req dto.SesionAnonimaRequest) (*dto.SesionResponse, error) {
	if req.DeviceID != "" {
		id, err := uuid.Parse(req.DeviceID)
		if err != nil {
			return nil, ErrCredenciales
		}
		sesion, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCredenciales
			}
			return nil, err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(sesion.SecretHash), []byte(req.DeviceSecret)); err != nil {
			return nil, ErrCredenciales
		}
		if err := s.repo.TouchLastSeen(ctx, id, time.Now()); err != nil {
			log.Warn().Err(err).Str("user_id", id.String()).Msg("auth: touch last_seen failed")
		}
		return s.tokens(id, "", false)
	}

	secret, err := nuevoSecreto()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	sesion := &model.SesionAnonima{
		ID:         uuid.New(),
		SecretHash: string(hash),
		LastSeenAt: time.Now(),
	}
	if err := s.repo.Create(ctx, sesion); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", sesion.ID.String()).Msg("auth: anonymous session created")
	return s.tokens(sesion.ID, secret, true)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.SesionResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, errors.New("se esperaba un refresh token")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		return nil, errors.New("sesion no encontrada")
	}
	return s.tokens(uid, "", false)
}

func (s *authService) tokens(userID uuid.UUID, secret string, nueva bool) (*dto.SesionResponse, error) {
	access, err := s.generateToken(userID, "access", time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(userID, "refresh", time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.SesionResponse{
		UserID:       userID.String(),
		DeviceSecret: secret,
		Nueva:        nueva,
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
	}, nil
}

func (s *authService) generateToken(userID uuid.UUID, typ string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"typ":     typ,
		"exp":     time.Now().Add(duration).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func nuevoSecreto() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
