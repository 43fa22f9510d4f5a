package service

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Códigos de insumo ─────────────────────────────────────────────────────────

// prefijoCodigo picks the code prefix: AGUA → "A", GASEOSA → first two letters
// of the name without spaces, anything else → first letter of the category.
func prefijoCodigo(categoria, nombre string) string {
	cat := strings.ToUpper(strings.TrimSpace(categoria))
	switch cat {
	case "AGUA":
		return "A"
	case "GASEOSA":
		sinEspacios := strings.Join(strings.Fields(strings.ToUpper(nombre)), "")
		r := []rune(sinEspacios)
		if len(r) == 0 {
			return "G"
		}
		if len(r) > 2 {
			r = r[:2]
		}
		return string(r)
	default:
		r := []rune(cat)
		if len(r) == 0 {
			return "X"
		}
		return string(r[0])
	}
}

// generarCodigo returns prefix + (1 + highest numeric suffix among existentes),
// zero-padded to three digits.
func generarCodigo(categoria, nombre string, existentes []string) string {
	prefijo := prefijoCodigo(categoria, nombre)
	maximo := 0
	for _, c := range existentes {
		if !strings.HasPrefix(c, prefijo) {
			continue
		}
		if n, ok := enteroInicial(c[len(prefijo):]); ok && n > maximo {
			maximo = n
		}
	}
	return fmt.Sprintf("%s%03d", prefijo, maximo+1)
}

// enteroInicial parses the leading decimal digits of s ("12B" → 12).
func enteroInicial(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

// ── Precios ──────────────────────────────────────────────────────────────────

// precioConGanancia returns round2(costo × (1 + pct/100)).
func precioConGanancia(costo, pct decimal.Decimal) decimal.Decimal {
	return round2(costo.Mul(decimal.NewFromInt(1).Add(pct.Div(cien))))
}

// ── Kits ─────────────────────────────────────────────────────────────────────

type calculoKit struct {
	Componentes []model.KitComponente // with NombreInsumo filled in
	Costo       decimal.Decimal
	Precio      decimal.Decimal
	Ganancia    decimal.Decimal
	MaxKits     int
	Limitante   string
}

// costoUnitario is costo_compra spread over the quantity on hand. An empty
// stock counts as one unit; a negative stock yields zero.
func costoUnitario(i model.Insumo) decimal.Decimal {
	ref := i.Cantidad
	if ref.IsZero() {
		ref = decimal.NewFromInt(1)
	}
	if ref.IsNegative() {
		return decimal.Zero
	}
	return i.CostoCompra.Div(ref)
}

// calcularKit derives cost, price and how many kits the current stock can
// build. A component whose insumo is missing makes the kit unbuildable.
func calcularKit(componentes []model.KitComponente, insumos map[uuid.UUID]model.Insumo, gananciaPct decimal.Decimal) calculoKit {
	out := calculoKit{Componentes: make([]model.KitComponente, len(componentes))}
	copy(out.Componentes, componentes)

	costo := decimal.Zero
	for i, c := range out.Componentes {
		if ins, ok := insumos[c.InsumoID]; ok {
			out.Componentes[i].NombreInsumo = ins.Nombre
			costo = costo.Add(costoUnitario(ins).Mul(c.Cantidad))
		}
	}
	out.Costo = round2(costo)
	out.Precio = precioConGanancia(out.Costo, gananciaPct)
	out.Ganancia = out.Precio.Sub(out.Costo)
	out.MaxKits, out.Limitante = maxKitsPosibles(componentes, insumos)
	return out
}

func maxKitsPosibles(componentes []model.KitComponente, insumos map[uuid.UUID]model.Insumo) (int, string) {
	if len(componentes) == 0 {
		return 0, "Sin componentes"
	}
	maximo, limitante, acotado := 0, "", false
	for _, c := range componentes {
		ins, ok := insumos[c.InsumoID]
		if !ok {
			return 0, fmt.Sprintf("Insumo ID %s no encontrado", c.InsumoID)
		}
		if !c.Cantidad.IsPositive() {
			continue
		}
		posibles := int(ins.Cantidad.Div(c.Cantidad).Floor().IntPart())
		if !acotado || posibles < maximo {
			maximo, limitante, acotado = posibles, ins.Nombre, true
		}
	}
	if !acotado || maximo < 0 {
		return 0, "N/A"
	}
	return maximo, limitante
}

// ── Validación ───────────────────────────────────────────────────────────────

func soloLetrasYEspacios(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

func normalizarNombre(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
