// Package ws mantiene las conexiones websocket del frontend y les difunde
// los eventos de inventario (stockAlert, expirationAlert, inventarioActualizado).
package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// tamaño del buffer de salida por cliente; si se llena, el cliente se desconecta
const clienteBufTam = 16

var _ alertas.Difusor = (*Hub)(nil)

// mensaje es el sobre que viaja por el socket: {"event": ..., "data": ...}.
type mensaje struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type cliente struct {
	conn   *websocket.Conn
	salida chan []byte
}

// Hub registra los clientes conectados y difunde eventos a todos.
type Hub struct {
	mu       sync.RWMutex
	clientes map[*cliente]struct{}
	log      *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clientes: make(map[*cliente]struct{}),
		log:      log,
	}
}

// Broadcast serializa el evento y lo encola a todos los clientes conectados.
// Un cliente con el buffer lleno se da por muerto y se desconecta.
func (h *Hub) Broadcast(evento string, payload any) {
	raw, err := json.Marshal(mensaje{Event: evento, Data: payload})
	if err != nil {
		h.log.Error().Err(err).Str("evento", evento).Msg("ws: serializando evento")
		return
	}

	h.mu.RLock()
	lentos := make([]*cliente, 0)
	for c := range h.clientes {
		select {
		case c.salida <- raw:
		default:
			lentos = append(lentos, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range lentos {
		h.log.Warn().Str("evento", evento).Msg("ws: cliente lento, desconectando")
		h.quitar(c)
	}
}

// Conectados devuelve la cantidad de clientes activos.
func (h *Hub) Conectados() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clientes)
}

// UpgradeMiddleware rechaza con 426 las peticiones que no son de websocket.
func UpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler devuelve el handler Fiber que acepta la conexión y la registra.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &cliente{
			conn:   conn,
			salida: make(chan []byte, clienteBufTam),
		}
		h.agregar(c)
		h.log.Info().Int("conectados", h.Conectados()).Msg("ws: cliente conectado")

		go c.escribir()

		// bucle de lectura: solo para detectar el cierre; la API es de salida
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.quitar(c)
		h.log.Info().Int("conectados", h.Conectados()).Msg("ws: cliente desconectado")
	})
}

func (h *Hub) agregar(c *cliente) {
	h.mu.Lock()
	h.clientes[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) quitar(c *cliente) {
	h.mu.Lock()
	if _, ok := h.clientes[c]; ok {
		delete(h.clientes, c)
		close(c.salida)
	}
	h.mu.Unlock()
}

func (c *cliente) escribir() {
	for raw := range c.salida {
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			break
		}
	}
	_ = c.conn.Close()
}
