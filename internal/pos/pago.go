package pos

import (
	"fmt"
	"sort"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/shopspring/decimal"
)

// toleranciaPago is the accepted difference between the sum of a mixed
// payment and the total.
var toleranciaPago = decimal.New(1, -6)

// metodosSimples are the methods that may appear inside a mixed payment.
var metodosSimples = map[string]bool{
	model.MetodoEfectivo:      true,
	model.MetodoTarjeta:       true,
	model.MetodoQR:            true,
	model.MetodoTransferencia: true,
}

// PagoError describes why a payment was rejected before reaching the store.
type PagoError struct {
	Motivo string
}

func (e *PagoError) Error() string { return e.Motivo }

// ValidarPago checks the tendered amounts against total and returns the
// payment breakdown to store plus the change owed.
//
//   - efectivo: received >= total, change = received - total
//   - tarjeta, qr, transferencia: received must equal total
//   - mixto: amounts must add up to total within 1e-6
//
// A missing amount for a single method means the exact total was tendered.
func ValidarPago(metodo string, montos map[string]decimal.Decimal, total decimal.Decimal) ([]model.Pago, decimal.Decimal, error) {
	if metodo == model.MetodoMixto {
		return validarMixto(montos, total)
	}
	if !metodosSimples[metodo] {
		return nil, decimal.Zero, &PagoError{Motivo: fmt.Sprintf("metodo de pago desconocido: %s", metodo)}
	}

	recibido, ok := montos[metodo]
	if !ok {
		recibido = total
	}
	if recibido.IsNegative() {
		return nil, decimal.Zero, &PagoError{Motivo: "el monto recibido no puede ser negativo"}
	}

	if metodo == model.MetodoEfectivo {
		if recibido.LessThan(total) {
			return nil, decimal.Zero, &PagoError{Motivo: fmt.Sprintf(
				"monto insuficiente: recibido %s, total %s", recibido.StringFixed(2), total.StringFixed(2))}
		}
		// the stored amount is what the sale collected, not the bill handed over
		return []model.Pago{{Metodo: metodo, Monto: total}}, recibido.Sub(total), nil
	}

	if recibido.Sub(total).Abs().GreaterThan(toleranciaPago) {
		return nil, decimal.Zero, &PagoError{Motivo: fmt.Sprintf(
			"el pago con %s debe ser exactamente %s", metodo, total.StringFixed(2))}
	}
	return []model.Pago{{Metodo: metodo, Monto: total}}, decimal.Zero, nil
}

func validarMixto(montos map[string]decimal.Decimal, total decimal.Decimal) ([]model.Pago, decimal.Decimal, error) {
	metodos := make([]string, 0, len(montos))
	for m := range montos {
		metodos = append(metodos, m)
	}
	sort.Strings(metodos)

	suma := decimal.Zero
	pagos := make([]model.Pago, 0, len(montos))
	for _, m := range metodos {
		monto := montos[m]
		if !metodosSimples[m] {
			return nil, decimal.Zero, &PagoError{Motivo: fmt.Sprintf("metodo de pago desconocido en pago mixto: %s", m)}
		}
		if monto.IsNegative() {
			return nil, decimal.Zero, &PagoError{Motivo: "los montos del pago mixto no pueden ser negativos"}
		}
		if monto.IsZero() {
			continue
		}
		suma = suma.Add(monto)
		pagos = append(pagos, model.Pago{Metodo: m, Monto: monto})
	}

	if suma.Sub(total).Abs().GreaterThan(toleranciaPago) {
		return nil, decimal.Zero, &PagoError{Motivo: fmt.Sprintf(
			"la suma de los pagos (%s) no coincide con el total (%s)", suma.StringFixed(2), total.StringFixed(2))}
	}
	return pagos, decimal.Zero, nil
}
