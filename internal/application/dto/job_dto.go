package dto

// CheckStockLevelsRequest body opcional de POST /functions/check-stock-levels.
type CheckStockLevelsRequest struct {
	ProductID string `json:"product_id" validate:"omitempty,max=64"`
}

// CheckStockLevelsResponse respuesta exitosa del recálculo.
type CheckStockLevelsResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	ProductsChecked  int    `json:"products_checked"`
	LowStockProducts int    `json:"low_stock_products"`
}

// GenerateAlertsResponse respuesta exitosa de la generación de alertas.
type GenerateAlertsResponse struct {
	Status          string `json:"status"`
	Message         string `json:"message"`
	AlertsGenerated int    `json:"alerts_generated"`
}

// JobErrorResponse respuesta de error de los endpoints de jobs.
type JobErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
