// Package reporte holds the in-memory aggregation behind the ledger views:
// the combined income/expense report, day bounds and page slicing.
package reporte

import (
	"sort"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/shopspring/decimal"
)

// Resumen is the combined report for a date range.
type Resumen struct {
	Desde *time.Time
	Hasta *time.Time

	Ventas  []model.Venta
	Egresos []model.Egreso
	Gastos  []model.GastoDiario

	TotalVentas   decimal.Decimal
	TotalEgresos  decimal.Decimal
	TotalGastos   decimal.Decimal
	Inversion     decimal.Decimal // egresos + gastos
	GananciaBruta decimal.Decimal // ventas - inversion
	Perdidas      decimal.Decimal // |ganancia bruta| when negative, else 0
	SaldoNeto     decimal.Decimal
}

// Construir totals the three ledgers and sorts every list newest first.
// The inputs are not modified.
func Construir(desde, hasta *time.Time, ventas []model.Venta, egresos []model.Egreso, gastos []model.GastoDiario) Resumen {
	r := Resumen{
		Desde:   desde,
		Hasta:   hasta,
		Ventas:  append([]model.Venta(nil), ventas...),
		Egresos: append([]model.Egreso(nil), egresos...),
		Gastos:  append([]model.GastoDiario(nil), gastos...),
	}
	sort.SliceStable(r.Ventas, func(i, j int) bool { return r.Ventas[i].CreatedAt.After(r.Ventas[j].CreatedAt) })
	sort.SliceStable(r.Egresos, func(i, j int) bool { return r.Egresos[i].Timestamp.After(r.Egresos[j].Timestamp) })
	sort.SliceStable(r.Gastos, func(i, j int) bool { return r.Gastos[i].Timestamp.After(r.Gastos[j].Timestamp) })

	r.TotalVentas = SumarVentas(r.Ventas)
	r.TotalEgresos = SumarEgresos(r.Egresos)
	r.TotalGastos = SumarGastos(r.Gastos)
	r.Inversion = r.TotalEgresos.Add(r.TotalGastos)
	r.GananciaBruta = r.TotalVentas.Sub(r.Inversion)
	r.Perdidas = decimal.Zero
	if r.GananciaBruta.IsNegative() {
		r.Perdidas = r.GananciaBruta.Abs()
	}
	r.SaldoNeto = r.GananciaBruta
	return r
}

func SumarVentas(vs []model.Venta) decimal.Decimal {
	total := decimal.Zero
	for _, v := range vs {
		total = total.Add(v.Total)
	}
	return total
}

func SumarEgresos(es []model.Egreso) decimal.Decimal {
	total := decimal.Zero
	for _, e := range es {
		total = total.Add(e.Total)
	}
	return total
}

func SumarGastos(gs []model.GastoDiario) decimal.Decimal {
	total := decimal.Zero
	for _, g := range gs {
		total = total.Add(g.Total)
	}
	return total
}
