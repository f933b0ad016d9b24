package usecase

import "github.com/jhoicas/stock-inventory-api/internal/application/dto"

// paginate recorta la colección ya filtrada a la página pedida.
func paginate[T any](items []T, page dto.PageRequest) ([]T, dto.PageResponse) {
	page.DefaultPage()
	from, to := page.Bounds(len(items))
	return items[from:to], dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)}
}
