package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse métricas agregadas para el panel principal.
type DashboardStatsResponse struct {
	TotalProductos     int64           `json:"total_productos"`
	TotalProveedores   int64           `json:"total_proveedores"`
	ProductosBajoStock int64           `json:"productos_bajo_stock"`
	VentasHoy          decimal.Decimal `json:"ventas_hoy"`
	VentasMes          decimal.Decimal `json:"ventas_mes"`
	NumeroVentasMes    int64           `json:"numero_ventas_mes"`
}

// VentaPorDiaDTO ventas agregadas de un día calendario.
type VentaPorDiaDTO struct {
	Fecha string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// ProductoVendidoDTO producto en el ranking de más vendidos.
type ProductoVendidoDTO struct {
	ProductoID    string          `json:"producto_id"`
	Nombre        string          `json:"nombre"`
	TotalVendido  int64           `json:"total_vendido"`
	TotalIngresos decimal.Decimal `json:"total_ingresos"`
}

// SugerenciaReposicionDTO sugerencia de reabastecimiento de un producto.
// Los nombres de campo los consume el frontend existente, no renombrar.
type SugerenciaReposicionDTO struct {
	IDProducto          string  `json:"id_producto"`
	NombreProducto      string  `json:"nombre_producto"`
	StockActual         int64   `json:"stock_actual"`
	PromedioVentaDiaria float64 `json:"promedio_venta_diaria"`
	DiasStockRestantes  float64 `json:"dias_stock_restantes"`
	UmbralCritico       int     `json:"umbral_critico"`
	CantidadSugerida    int64   `json:"cantidad_sugerida_a_pedir"`
	ProveedorSugerido   string  `json:"proveedor_sugerido"`
	Motivo              string  `json:"motivo"`
}
