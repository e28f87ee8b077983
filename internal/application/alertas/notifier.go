package alertas

import (
	"fmt"
	"time"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

const (
	eventoStock       = "stockAlert"
	eventoVencimiento = "expirationAlert"
	eventoInventario  = "inventarioActualizado"
)

type tipoTarea int

const (
	tareaStockBajo tipoTarea = iota
	tareaVencimiento
	tareaInventario
)

// tarea lleva un snapshot del producto al worker. Snapshot y no puntero
// compartido: la entidad puede seguir mutando después del commit.
type tarea struct {
	tipo     tipoTarea
	producto entity.Producto
}

// Notifier despacha alertas fuera de la transacción que las originó: los
// casos de uso encolan después del commit y un worker entrega correo y
// websocket en segundo plano. El encolado nunca bloquea ni falla; si la cola
// está llena la alerta se descarta con un warning.
type Notifier struct {
	usuarioRepo repository.UsuarioRepository
	email       EmailSender // nil = correo deshabilitado
	difusor     Difusor
	log         *logger.Logger
	cola        chan tarea
	done        chan struct{}
}

// NewNotifier construye el notificador. Llamar Start para arrancar el worker.
func NewNotifier(usuarioRepo repository.UsuarioRepository, email EmailSender, difusor Difusor, log *logger.Logger, colaTam int) *Notifier {
	if colaTam <= 0 {
		colaTam = 64
	}
	return &Notifier{
		usuarioRepo: usuarioRepo,
		email:       email,
		difusor:     difusor,
		log:         log,
		cola:        make(chan tarea, colaTam),
		done:        make(chan struct{}),
	}
}

// Start arranca el worker en una goroutine.
func (n *Notifier) Start() {
	go n.run()
}

// Close cierra la cola y espera a que el worker drene lo pendiente.
func (n *Notifier) Close() {
	close(n.cola)
	<-n.done
}

// StockActualizado notifica que el stock de un producto cambió: siempre emite
// inventarioActualizado y, si el stock quedó en o bajo el mínimo sugerido,
// también la alerta de stock bajo.
func (n *Notifier) StockActualizado(p *entity.Producto) {
	n.InventarioActualizado(p)
	if p.Stock <= p.StockMinimoSugerido {
		n.encolar(tarea{tipo: tareaStockBajo, producto: *p})
	}
}

// InventarioActualizado emite solo el evento de inventario, sin chequeo de
// stock bajo (recepciones de mercadería).
func (n *Notifier) InventarioActualizado(p *entity.Producto) {
	n.encolar(tarea{tipo: tareaInventario, producto: *p})
}

// AlertaVencimiento notifica que un producto está por vencer.
func (n *Notifier) AlertaVencimiento(p *entity.Producto) {
	n.encolar(tarea{tipo: tareaVencimiento, producto: *p})
}

func (n *Notifier) encolar(t tarea) {
	select {
	case n.cola <- t:
	default:
		n.log.Warn().
			Str("producto", t.producto.Nombre).
			Msg("cola de alertas llena, alerta descartada")
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for t := range n.cola {
		switch t.tipo {
		case tareaStockBajo:
			n.despacharStockBajo(&t.producto)
		case tareaVencimiento:
			n.despacharVencimiento(&t.producto)
		case tareaInventario:
			n.despacharInventario(&t.producto)
		}
	}
}

func (n *Notifier) despacharStockBajo(p *entity.Producto) {
	asunto := fmt.Sprintf("⚠️ Alerta de stock bajo: %s", p.Nombre)
	html := fmt.Sprintf(
		"<p>Hola,</p><p>El producto <strong>%s</strong> tiene un stock actual de <strong>%d</strong>, lo cual está por debajo del mínimo permitido (<strong>%d</strong>).</p><p>Es recomendable gestionar reposición lo antes posible.</p>",
		p.Nombre, p.Stock, p.StockMinimoSugerido,
	)
	n.enviarCorreoAdmins(asunto, html, p.Nombre)

	n.difusor.Broadcast(eventoStock, dto.StockAlertPayload{
		Message:           fmt.Sprintf("Stock bajo: %s (%d unidades). Mínimo sugerido: %d.", p.Nombre, p.Stock, p.StockMinimoSugerido),
		ProductID:         p.ID,
		ProductName:       p.Nombre,
		CurrentStock:      p.Stock,
		SuggestedMinStock: p.StockMinimoSugerido,
		Type:              "stock_low",
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) despacharVencimiento(p *entity.Producto) {
	fecha := ""
	if p.FechaVencimiento != nil {
		fecha = p.FechaVencimiento.Format("2006-01-02")
	}
	asunto := fmt.Sprintf("⏳ Producto por vencer: %s", p.Nombre)
	html := fmt.Sprintf(
		"<p>Hola,</p><p>El producto <strong>%s</strong> tiene una fecha de vencimiento próxima: <strong>%s</strong>.</p><p>Verifica y gestiona este producto para evitar pérdidas.</p>",
		p.Nombre, fecha,
	)
	n.enviarCorreoAdmins(asunto, html, p.Nombre)

	n.difusor.Broadcast(eventoVencimiento, dto.ExpirationAlertPayload{
		Message:        fmt.Sprintf("Producto por vencer: %s. Fecha de vencimiento: %s.", p.Nombre, fecha),
		ProductID:      p.ID,
		ProductName:    p.Nombre,
		ExpirationDate: fecha,
		Type:           "expiration_warning",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) despacharInventario(p *entity.Producto) {
	n.difusor.Broadcast(eventoInventario, dto.InventarioActualizadoPayload{
		ProductID:    p.ID,
		ProductName:  p.Nombre,
		CurrentStock: p.Stock,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}

// enviarCorreoAdmins envía el correo a todos los administradores con email.
// Cualquier fallo se registra y se traga: las alertas jamás interrumpen al caller.
func (n *Notifier) enviarCorreoAdmins(asunto, html, producto string) {
	if n.email == nil {
		return
	}
	correos, err := n.usuarioRepo.EmailsPorRol(entity.RolAdministrador)
	if err != nil {
		n.log.Error().Err(err).Msg("no se pudieron obtener correos de administradores")
		return
	}
	if len(correos) == 0 {
		n.log.Warn().Str("producto", producto).Msg("sin administradores con email, correo no enviado")
		return
	}
	if err := n.email.Send(correos, asunto, html); err != nil {
		n.log.Error().Err(err).Str("producto", producto).Msg("error al enviar correo de alerta")
		return
	}
	n.log.Info().Str("producto", producto).Int("destinatarios", len(correos)).Msg("alerta enviada por correo")
}
