// Package pdf genera el documento imprimible de una orden de compra para
// enviar al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PetStock  │  N° Orden + Fecha + Estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre / Contacto / Dirección                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Precio Unit. | Subtotal            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA ORDEN                                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/danilalessandra/Petstock-Backend/internal/application/compras"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ compras.PDFGenerator = (*MarotoOrdenCompraGenerator)(nil)

// MarotoOrdenCompraGenerator implementa compras.PDFGenerator usando Maroto v2.
type MarotoOrdenCompraGenerator struct {
	empresa string
}

// NewMarotoOrdenCompraGenerator construye el generador.
func NewMarotoOrdenCompraGenerator(empresa string) *MarotoOrdenCompraGenerator {
	if empresa == "" {
		empresa = "PetStock"
	}
	return &MarotoOrdenCompraGenerator{empresa: empresa}
}

// OrdenCompraPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrdenCompraGenerator) OrdenCompraPDF(
	orden *entity.OrdenCompra,
	proveedor *entity.Proveedor,
	nombresProductos map[string]string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra", true).
		WithAuthor(g.empresa, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(orden))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(proveedorRow(proveedor))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(orden.Detalles, nombresProductos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(orden))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar orden de compra: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre de la empresa (izq) y número, fecha y estado (der).
func (g *MarotoOrdenCompraGenerator) headerRow(orden *entity.OrdenCompra) core.Row {
	numero := "OC-" + strings.ToUpper(corto(orden.ID))
	fecha := orden.Fecha.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.empresa, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sistema de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s", fecha, orden.Estado), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// proveedorRow: datos del proveedor destinatario.
func proveedorRow(proveedor *entity.Proveedor) core.Row {
	nombre := "Sin Proveedor"
	contacto := "—"
	direccion := "—"
	if proveedor != nil {
		nombre = proveedor.Nombre
		contacto = nonEmpty(proveedor.Contacto, "—")
		direccion = nonEmpty(proveedor.Direccion, "—")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Dirección: %s", contacto, direccion),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la orden.
func tableDetailRows(detalles []entity.DetalleOrdenCompra, nombres map[string]string) []core.Row {
	result := make([]core.Row, 0, len(detalles))
	for _, d := range detalles {
		nombre := nombres[d.ProductoID]
		if nombre == "" {
			nombre = d.ProductoID
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%d", d.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+d.Precio.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+d.Subtotal().StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total de la orden alineado a la derecha.
func totalRow(orden *entity.OrdenCompra) core.Row {
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DE LA ORDEN:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+orden.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// corto devuelve los primeros 8 caracteres del ID para rotular la orden.
func corto(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
