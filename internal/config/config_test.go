package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListaPagadores(t *testing.T) {
	cfg := &Config{Pagadores: " Caja , Diego Vargas,, "}
	assert.Equal(t, []string{"Caja", "Diego Vargas"}, cfg.ListaPagadores())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 4, cfg.MesasIniciales)
	assert.Contains(t, cfg.ListaPagadores(), "Caja")
}
