package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/config"
	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/jwt"
	"github.com/smallbiznis/codegrant/internal/repository"
)

// ClientDirectory resolves registered clients.
type ClientDirectory interface {
	Resolve(ctx context.Context, clientID string) (*domain.Client, error)
	Exists(ctx context.Context, clientID string) bool
}

// AuthService runs the authorization code grant: authorize, login and token exchange.
type AuthService struct {
	clients ClientDirectory
	pending repository.PendingAuthorizationStore
	codes   repository.AuthorizationCodeStore
	users   repository.UserRepository
	jwt     *jwt.Generator
	cfg     config.Config
	logger  *zap.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// NewAuthService wires dependencies.
func NewAuthService(
	clients ClientDirectory,
	pending repository.PendingAuthorizationStore,
	codes repository.AuthorizationCodeStore,
	users repository.UserRepository,
	generator *jwt.Generator,
	cfg config.Config,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		clients: clients,
		pending: pending,
		codes:   codes,
		users:   users,
		jwt:     generator,
		cfg:     cfg,
		logger:  logger,
		tracer:  otel.Tracer("github.com/smallbiznis/codegrant/internal/service"),
		now:     time.Now,
	}
}

func (s *AuthService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if s == nil || s.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return s.tracer.Start(ctx, name)
}

// storeContext bounds a single cache or store call.
func (s *AuthService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

func (s *AuthService) audit(event string, attrs ...any) {
	logger := s.log()
	fields := make([]zap.Field, 0, len(attrs)/2+2)
	fields = append(fields, zap.String("event", event), zap.Time("timestamp", s.now().UTC()))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	logger.Info("audit", fields...)
}

func (s *AuthService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}

// NewRequestID returns "<unix seconds>-<hex of a random uint64>". It identifies
// a pending request; it is not meant to be unguessable.
func NewRequestID(now time.Time) (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate request id: %w", err)
	}
	return fmt.Sprintf("%d-%x", now.Unix(), binary.BigEndian.Uint64(b[:])), nil
}

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	codeLength   = 32
)

var codeAlphabetSize = big.NewInt(int64(len(codeAlphabet)))

func newAuthorizationCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, codeAlphabetSize)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
