package infra

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_Conecta(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedis("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	assert.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
}

func TestNewRedis_URLInvalida(t *testing.T) {
	_, err := NewRedis("http://localhost:6379")
	assert.ErrorContains(t, err, "redis: parse url")
}

func TestNewRedis_SinServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis("redis://" + addr)
	assert.ErrorContains(t, err, "redis: ping")
}
