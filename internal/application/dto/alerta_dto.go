package dto

// StockAlertPayload cuerpo del evento websocket "stockAlert". Los nombres de
// campo (camelCase) los consume el frontend existente, no renombrar.
type StockAlertPayload struct {
	Message           string `json:"message"`
	ProductID         string `json:"productId"`
	ProductName       string `json:"productName"`
	CurrentStock      int64  `json:"currentStock"`
	SuggestedMinStock int64  `json:"suggestedMinStock"`
	Type              string `json:"type"` // stock_low
	Timestamp         string `json:"timestamp"`
}

// ExpirationAlertPayload cuerpo del evento websocket "expirationAlert".
type ExpirationAlertPayload struct {
	Message        string `json:"message"`
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	ExpirationDate string `json:"expirationDate"`
	Type           string `json:"type"` // expiration_warning
	Timestamp      string `json:"timestamp"`
}

// InventarioActualizadoPayload cuerpo del evento "inventarioActualizado",
// emitido cada vez que cambia el stock de un producto.
type InventarioActualizadoPayload struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	CurrentStock int64  `json:"currentStock"`
	Timestamp    string `json:"timestamp"`
}
