package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errSMTP = errors.New("dial tcp: connection refused")

func TestCircuitBreaker_AbreTrasFallos(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", FailureThreshold: 2, OpenTimeout: time.Minute})

	assert.Equal(t, errSMTP, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBClosed, cb.State())
	assert.Equal(t, errSMTP, cb.Execute(func() error { return errSMTP }))
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SemiAbiertoSeCierraConExito(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBOpen, cb.State())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, CBHalfOpen, cb.State())
	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_SemiAbiertoVuelveAAbrir(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errSMTP })
	now = now.Add(2 * time.Minute)
	_ = cb.Execute(func() error { return errSMTP })
	assert.Equal(t, CBOpen, cb.State())
}

func TestMailer_SinHostNoEnvia(t *testing.T) {
	m := &Mailer{}
	assert.ErrorIs(t, m.SendPDF("a@b.c", "s", "b", "r.pdf", []byte("x")), ErrSMTPNoConfigurado)
}
