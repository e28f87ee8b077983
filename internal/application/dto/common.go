package dto

// PageRequest paginación para listados (page empieza en 1).
type PageRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// DefaultPage aplica valores por defecto si Page/Limit son cero.
func (p *PageRequest) DefaultPage() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 10
	}
}

// Offset calcula el desplazamiento de filas de la página actual.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MensajeResponse respuesta simple con un mensaje (borrados, acciones).
type MensajeResponse struct {
	Message string `json:"message"`
}
