package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-teams-api/internal/domain/entity"
)

// LineTotal total de una línea: cantidad × precio unitario.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Aggregate implementa el agregador de precios del carrito (servicio de dominio).
// item.TotalPrice = item.Quantity × item.ProductDetails.UnitPrice
// cart.TotalPrices = Σ item.TotalPrice (0 si no hay líneas)
// Muta cart en sitio y lo devuelve; no persiste nada.
func Aggregate(cart *entity.CartDetails) *entity.CartDetails {
	if cart == nil {
		return nil
	}
	total := decimal.Zero
	for _, item := range cart.Items {
		if item == nil {
			continue
		}
		item.TotalPrice = LineTotal(item.Quantity, item.ProductDetails.UnitPrice)
		total = total.Add(item.TotalPrice)
	}
	cart.TotalPrices = total
	return cart
}

// OrderTotal suma las líneas congeladas de una orden.
func OrderTotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(LineTotal(it.Quantity, it.ProductDetails.UnitPrice))
	}
	return total
}
