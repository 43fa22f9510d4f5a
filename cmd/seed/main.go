// Command seed creates an anonymous device session and loads a small demo
// inventory for it. It prints the device id and secret so a client can log
// in as that owner.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/config"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/dto"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/infra"
	"github.com/jassler1/el-refugio-de-las-gibas/internal/router"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type insumoDemo struct {
	nombre, categoria, unidad string
	cantidad, minimo, costo   int64
	ganancia                  int64
}

var demo = []insumoDemo{
	{"Cafe molido", "Cafeteria", "GR", 2000, 500, 1, 150},
	{"Leche entera", "Lacteos", "LTS", 20, 5, 8, 50},
	{"Azucar", "Abarrotes", "KG", 10, 2, 7, 40},
	{"Vaso descartable", "Descartables", "UNIDAD", 300, 50, 1, 100},
	{"Galleta de avena", "Panaderia", "UNIDAD", 40, 10, 3, 100},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// no hub and no dispatcher: nothing is listening while seeding
	svcs := router.NewServices(cfg, db, nil, nil, nil)
	ctx := context.Background()

	sesion, err := svcs.Auth.SesionAnonima(ctx, dto.SesionAnonimaRequest{})
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}
	owner := uuid.MustParse(sesion.UserID)

	ids := make(map[string]string, len(demo))
	for _, d := range demo {
		cantidad := decimal.NewFromInt(d.cantidad)
		minimo := decimal.NewFromInt(d.minimo)
		ganancia := decimal.NewFromInt(d.ganancia)
		resp, err := svcs.Inventario.CrearInsumo(ctx, owner, dto.CrearInsumoRequest{
			Nombre:       d.nombre,
			Categoria:    d.categoria,
			Cantidad:     &cantidad,
			StockMinimo:  &minimo,
			UnidadMedida: d.unidad,
			CostoCompra:  decimal.NewFromInt(d.costo),
			GananciaPct:  &ganancia,
		})
		if err != nil {
			log.Fatal().Err(err).Str("insumo", d.nombre).Msg("create insumo")
		}
		ids[d.nombre] = resp.ID
		log.Info().Str("codigo", resp.Codigo).Str("nombre", resp.Nombre).Msg("insumo creado")
	}

	kit, err := svcs.Inventario.CrearKit(ctx, owner, dto.CrearKitRequest{
		Nombre: "Cafe con leche",
		Componentes: []dto.ComponenteKitRequest{
			{InsumoID: ids["Cafe molido"], Cantidad: decimal.NewFromInt(15)},
			{InsumoID: ids["Leche entera"], Cantidad: decimal.RequireFromString("0.2")},
			{InsumoID: ids["Vaso descartable"], Cantidad: decimal.NewFromInt(1)},
		},
		GananciaPct: decimal.NewFromInt(60),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create kit")
	}
	log.Info().Str("kit", kit.Nombre).Int("cantidad", kit.Cantidad).Msg("kit creado")

	fmt.Printf("device_id:     %s\ndevice_secret: %s\n", sesion.UserID, sesion.DeviceSecret)
}
