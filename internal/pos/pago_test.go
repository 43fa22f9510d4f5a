package pos

import (
	"testing"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidarPago_EfectivoConVuelto(t *testing.T) {
	pagos, vuelto, err := ValidarPago(model.MetodoEfectivo, map[string]decimal.Decimal{"efectivo": d("50")}, d("22.50"))
	require.NoError(t, err)
	assert.Equal(t, "27.50", vuelto.StringFixed(2))
	require.Len(t, pagos, 1)
	assert.True(t, d("22.50").Equal(pagos[0].Monto))
}

func TestValidarPago_EfectivoInsuficiente(t *testing.T) {
	_, _, err := ValidarPago(model.MetodoEfectivo, map[string]decimal.Decimal{"efectivo": d("20")}, d("22.50"))
	var pe *PagoError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Motivo, "insuficiente")
}

func TestValidarPago_EfectivoSinMontoEsExacto(t *testing.T) {
	_, vuelto, err := ValidarPago(model.MetodoEfectivo, nil, d("10"))
	require.NoError(t, err)
	assert.True(t, vuelto.IsZero())
}

func TestValidarPago_TarjetaDebeSerExacta(t *testing.T) {
	_, _, err := ValidarPago(model.MetodoTarjeta, map[string]decimal.Decimal{"tarjeta": d("23")}, d("22.50"))
	assert.Error(t, err)

	_, vuelto, err := ValidarPago(model.MetodoQR, map[string]decimal.Decimal{"qr": d("22.50")}, d("22.50"))
	require.NoError(t, err)
	assert.True(t, vuelto.IsZero())
}

func TestValidarPago_MixtoExacto(t *testing.T) {
	montos := map[string]decimal.Decimal{"efectivo": d("20"), "tarjeta": d("2.50")}
	pagos, _, err := ValidarPago(model.MetodoMixto, montos, d("22.50"))
	require.NoError(t, err)
	require.Len(t, pagos, 2)
	assert.Equal(t, "efectivo", pagos[0].Metodo)
	assert.Equal(t, "tarjeta", pagos[1].Metodo)
}

func TestValidarPago_MixtoNoCuadra(t *testing.T) {
	montos := map[string]decimal.Decimal{"efectivo": d("20"), "tarjeta": d("2")}
	_, _, err := ValidarPago(model.MetodoMixto, montos, d("22.50"))
	var pe *PagoError
	assert.ErrorAs(t, err, &pe)
}

func TestValidarPago_MixtoDentroDeTolerancia(t *testing.T) {
	montos := map[string]decimal.Decimal{"efectivo": d("20.0000005"), "qr": d("2.5")}
	_, _, err := ValidarPago(model.MetodoMixto, montos, d("22.50"))
	assert.NoError(t, err)
}

func TestValidarPago_MixtoMetodoDesconocido(t *testing.T) {
	montos := map[string]decimal.Decimal{"cheque": d("22.50")}
	_, _, err := ValidarPago(model.MetodoMixto, montos, d("22.50"))
	assert.Error(t, err)
}

func TestValidarPago_MontoNegativo(t *testing.T) {
	montos := map[string]decimal.Decimal{"efectivo": d("30"), "tarjeta": d("-7.50")}
	_, _, err := ValidarPago(model.MetodoMixto, montos, d("22.50"))
	assert.Error(t, err)
}

func TestValidarPago_MetodoDesconocido(t *testing.T) {
	_, _, err := ValidarPago("bitcoin", nil, d("1"))
	assert.Error(t, err)
}
