package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

// StockLevelChecker recálculo de stock (jobs.StockLevelRecalculator).
type StockLevelChecker interface {
	Run(ctx context.Context, productID string) (jobs.StockCheckResult, error)
}

// AlertRunner generación de alertas (jobs.AlertGenerator).
type AlertRunner interface {
	Run(ctx context.Context) (jobs.AlertRunResult, error)
}

// JobHandler expone los jobs como endpoints invocables (POST). Contrato de respuesta fijo:
// los clientes existentes leen status/message y los contadores.
type JobHandler struct {
	stock  StockLevelChecker
	alerts AlertRunner
	log    *logger.Logger
}

// NewJobHandler construye el handler.
func NewJobHandler(stock StockLevelChecker, alerts AlertRunner, log *logger.Logger) *JobHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &JobHandler{stock: stock, alerts: alerts, log: log}
}

// CheckStockLevels godoc
// @Summary      Recalcular stock total y crear alertas de stock bajo
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckStockLevelsRequest  false  "product_id opcional"
// @Success      200   {object}  dto.CheckStockLevelsResponse
// @Failure      405   {object}  dto.JobErrorResponse
// @Failure      500   {object}  dto.JobErrorResponse
// @Router       /functions/check-stock-levels [post]
func (h *JobHandler) CheckStockLevels(c *fiber.Ctx) error {
	if done, err := h.preflight(c); done {
		return err
	}
	res, err := h.stock.Run(c.UserContext(), h.productFilter(c))
	if err != nil {
		h.log.Error().Err(err).Msg("check-stock-levels falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.JobErrorResponse{
			Status:  "error",
			Message: fmt.Sprintf("Failed to check stock levels: %v", err),
		})
	}
	return c.JSON(dto.CheckStockLevelsResponse{
		Status:           "success",
		Message:          fmt.Sprintf("Successfully checked %d products, found %d low stock products", res.ProductsChecked, res.LowStockProducts),
		ProductsChecked:  res.ProductsChecked,
		LowStockProducts: res.LowStockProducts,
	})
}

// productFilter lee product_id del body sin depender del Content-Type.
// Un body vacío o ilegible recalcula todos los productos.
func (h *JobHandler) productFilter(c *fiber.Ctx) string {
	raw := c.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var in dto.CheckStockLevelsRequest
	if err := json.Unmarshal(raw, &in); err != nil {
		h.log.Warn().Err(err).Msg("check-stock-levels: body ilegible, se revisan todos los productos")
		return ""
	}
	if err := validate.Struct(in); err != nil {
		h.log.Warn().Err(err).Str("product_id", in.ProductID).Msg("check-stock-levels: product_id inválido, se revisan todos los productos")
		return ""
	}
	return in.ProductID
}

// GenerateAlerts godoc
// @Summary      Generar alertas de vencimiento y stock bajo
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  dto.GenerateAlertsResponse
// @Failure      405  {object}  dto.JobErrorResponse
// @Failure      500  {object}  dto.JobErrorResponse
// @Router       /functions/generate-alerts [post]
func (h *JobHandler) GenerateAlerts(c *fiber.Ctx) error {
	if done, err := h.preflight(c); done {
		return err
	}
	res, err := h.alerts.Run(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("generate-alerts falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.JobErrorResponse{
			Status:  "error",
			Message: fmt.Sprintf("Failed to generate alerts: %v", err),
		})
	}
	return c.JSON(dto.GenerateAlertsResponse{
		Status:          "success",
		Message:         fmt.Sprintf("Successfully generated %d alerts", res.AlertsGenerated),
		AlertsGenerated: res.AlertsGenerated,
	})
}

// preflight responde OPTIONS y rechaza métodos distintos de POST. done=true si ya respondió.
func (h *JobHandler) preflight(c *fiber.Ctx) (bool, error) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	switch c.Method() {
	case fiber.MethodOptions:
		c.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "*")
		return true, c.SendStatus(fiber.StatusNoContent)
	case fiber.MethodPost:
		return false, nil
	}
	return true, c.Status(fiber.StatusMethodNotAllowed).JSON(dto.JobErrorResponse{
		Status:  "error",
		Message: "Only POST requests are allowed",
	})
}
