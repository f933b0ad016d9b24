package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
)

// AlertHandler consulta, resolución y exportación de alertas (protegido).
type AlertHandler struct {
	uc     *usecase.AlertUseCase
	export *usecase.AlertExportUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *usecase.AlertUseCase, export *usecase.AlertExportUseCase) *AlertHandler {
	return &AlertHandler{uc: uc, export: export}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Producto (nombre/SKU), mensaje o tipo"
// @Param        status  query  string  false  "all | resolved | unresolved"  default(all)
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.AlertListResponse
// @Failure      400     {object}  dto.ValidationErrorResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	req := dto.AlertListRequest{ListRequest: listRequest(c), Status: c.Query("status")}
	if ok, err := validateInput(c, &req); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), req)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener alerta por ID
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [get]
func (h *AlertHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "alerta no encontrada")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerta no encontrada"})
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Marcar alerta como resuelta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Resolve(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "alerta no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar alerta
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la alerta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err, "alerta no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar alertas
// @Description  Descarga el listado filtrado en json (por defecto), pdf o xlsx.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        format  query  string  false  "json | pdf | xlsx"  default(json)
// @Param        search  query  string  false  "Texto a buscar"
// @Param        status  query  string  false  "all | resolved | unresolved"
// @Success      200
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/alerts/export [get]
func (h *AlertHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.UserContext(), c.Query("format"), c.Query("search"), search.ParseAlertStatus(c.Query("status")))
	if err != nil {
		return writeError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Content)
}
