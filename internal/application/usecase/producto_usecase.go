package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// Notificador avisa cambios de stock tras escrituras directas sobre el producto.
type Notificador interface {
	StockActualizado(p *entity.Producto)
}

// ProductoUseCase casos de uso CRUD para productos. Las mutaciones de stock
// por ventas y compras viven en sus propios módulos; aquí solo la edición
// directa del catálogo.
type ProductoUseCase struct {
	repo        repository.ProductoRepository
	notificador Notificador
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository, notificador Notificador) *ProductoUseCase {
	return &ProductoUseCase{repo: repo, notificador: notificador}
}

// Create crea un nuevo producto con los valores por defecto de reabastecimiento.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	if in.Nombre == "" || in.Stock < 0 || in.Precio.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	vencimiento, err := parseFechaOpcional(in.FechaVencimiento)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:                    uuid.New().String(),
		Nombre:                in.Nombre,
		Descripcion:           in.Descripcion,
		Stock:                 in.Stock,
		Precio:                in.Precio,
		FechaVencimiento:      vencimiento,
		ProveedorID:           in.ProveedorID,
		DiasTransitoProveedor: entity.DiasTransitoPorDefecto,
		FactorSeguridadStock:  entity.FactorSeguridadPorDefecto,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if in.DiasTransitoProveedor != nil && *in.DiasTransitoProveedor > 0 {
		producto.DiasTransitoProveedor = *in.DiasTransitoProveedor
	}
	if in.FactorSeguridadStock != nil && in.FactorSeguridadStock.IsPositive() {
		producto.FactorSeguridadStock = *in.FactorSeguridadStock
	}
	if in.StockMinimoSugerido != nil && *in.StockMinimoSugerido >= 0 {
		producto.StockMinimoSugerido = *in.StockMinimoSugerido
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update actualiza un producto. Si la edición cambia el stock se notifica el
// cambio (y el posible stock bajo) igual que en las operaciones de venta.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}

	stockAnterior := producto.Stock
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		producto.Stock = *in.Stock
	}
	if in.Precio != nil {
		if in.Precio.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto.Precio = *in.Precio
	}
	if in.FechaVencimiento != nil {
		vencimiento, err := parseFechaOpcional(in.FechaVencimiento)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		producto.FechaVencimiento = vencimiento
	}
	if in.ProveedorID != nil {
		if *in.ProveedorID == "" {
			producto.ProveedorID = nil
		} else {
			producto.ProveedorID = in.ProveedorID
		}
	}
	if in.DiasTransitoProveedor != nil && *in.DiasTransitoProveedor > 0 {
		producto.DiasTransitoProveedor = *in.DiasTransitoProveedor
	}
	if in.FactorSeguridadStock != nil && in.FactorSeguridadStock.IsPositive() {
		producto.FactorSeguridadStock = *in.FactorSeguridadStock
	}
	if in.StockMinimoSugerido != nil && *in.StockMinimoSugerido >= 0 {
		producto.StockMinimoSugerido = *in.StockMinimoSugerido
	}
	producto.UpdatedAt = time.Now()

	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	if producto.Stock != stockAnterior {
		uc.notificador.StockActualizado(producto)
	}
	return toProductoResponse(producto), nil
}

// List lista todos los productos.
func (uc *ProductoUseCase) List() ([]dto.ProductoResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductoResponse(p))
	}
	return out, nil
}

// Delete elimina un producto por ID.
func (uc *ProductoUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func parseFechaOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	var vencimiento *string
	if p.FechaVencimiento != nil {
		f := p.FechaVencimiento.Format("2006-01-02")
		vencimiento = &f
	}
	return &dto.ProductoResponse{
		ID:                    p.ID,
		Nombre:                p.Nombre,
		Descripcion:           p.Descripcion,
		Stock:                 p.Stock,
		Precio:                p.Precio,
		FechaVencimiento:      vencimiento,
		ProveedorID:           p.ProveedorID,
		DiasTransitoProveedor: p.DiasTransitoProveedor,
		FactorSeguridadStock:  p.FactorSeguridadStock,
		StockMinimoSugerido:   p.StockMinimoSugerido,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
