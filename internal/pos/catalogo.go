package pos

import (
	"sort"
	"strings"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/model"
)

// Catalogo merges the sellable insumos and kits (those with a positive sale
// price) into one list sorted by name, optionally filtered by a
// case-insensitive name substring.
func Catalogo(insumos []model.Insumo, kits []model.Kit, filtro string) []model.Vendible {
	filtro = strings.ToUpper(strings.TrimSpace(filtro))
	out := make([]model.Vendible, 0, len(insumos)+len(kits))
	for i := range insumos {
		if !insumos[i].Precio().IsPositive() {
			continue
		}
		out = append(out, &insumos[i])
	}
	for i := range kits {
		if !kits[i].Precio().IsPositive() {
			continue
		}
		out = append(out, &kits[i])
	}
	if filtro != "" {
		filtrados := out[:0]
		for _, p := range out {
			if strings.Contains(strings.ToUpper(p.ProductoNombre()), filtro) {
				filtrados = append(filtrados, p)
			}
		}
		out = filtrados
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].ProductoNombre() < out[b].ProductoNombre()
	})
	return out
}
