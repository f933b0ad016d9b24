package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// idealStockFactor stock objetivo tras reponer, como múltiplo del punto de reorden.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición a partir de los productos bajo punto de reorden.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con total_stock < reorder_point, la cantidad
// sugerida de pedido y una prioridad (1 = más urgente). Usa el total_stock cacheado.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		idealStock := p.ReorderPoint.Mul(idealStockFactor)
		suggestedQty := idealStock.Sub(p.TotalStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			Category:           p.Category,
			CurrentStock:       p.TotalStock,
			ReorderPoint:       p.ReorderPoint,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitPrice:          p.Price,
			EstimatedOrderCost: suggestedQty.Mul(p.Price),
		})
	}

	// Ordenar: mayor déficit relativo, luego mayor déficit absoluto, luego SKU.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		ra, rb := deficitRatio(a), deficitRatio(b)
		if !ra.Equal(rb) {
			return ra.GreaterThan(rb)
		}
		defA := a.ReorderPoint.Sub(a.CurrentStock)
		defB := b.ReorderPoint.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.SKU < b.SKU
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

func deficitRatio(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if !s.ReorderPoint.IsPositive() {
		return decimal.Zero
	}
	return s.ReorderPoint.Sub(s.CurrentStock).Div(s.ReorderPoint)
}
