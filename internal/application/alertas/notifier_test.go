package alertas_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	emails []string
}

func (f *fakeUsuarioRepo) Create(*entity.Usuario) error                      { return nil }
func (f *fakeUsuarioRepo) GetByID(string) (*entity.Usuario, error)           { return nil, nil }
func (f *fakeUsuarioRepo) GetByEmail(string) (*entity.Usuario, error)        { return nil, nil }
func (f *fakeUsuarioRepo) GetByRefreshToken(string) (*entity.Usuario, error) { return nil, nil }
func (f *fakeUsuarioRepo) UpdateRefreshToken(string, string) error           { return nil }
func (f *fakeUsuarioRepo) Update(*entity.Usuario) error                      { return nil }
func (f *fakeUsuarioRepo) List() ([]*entity.Usuario, error)                  { return nil, nil }
func (f *fakeUsuarioRepo) Delete(string) error                               { return nil }
func (f *fakeUsuarioRepo) EmailsPorRol(rol string) ([]string, error)         { return f.emails, nil }

type evento struct {
	nombre  string
	payload any
}

type spyDifusor struct {
	mu      sync.Mutex
	eventos []evento
}

func (s *spyDifusor) Broadcast(nombre string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventos = append(s.eventos, evento{nombre: nombre, payload: payload})
}

func (s *spyDifusor) lista() []evento {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]evento(nil), s.eventos...)
}

type spyEmail struct {
	mu      sync.Mutex
	envios  []string // asuntos
	destino [][]string
}

func (s *spyEmail) Send(to []string, asunto, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envios = append(s.envios, asunto)
	s.destino = append(s.destino, to)
	return nil
}

func producto(id string, stock, minimo int64) *entity.Producto {
	return &entity.Producto{ID: id, Nombre: "Producto " + id, Stock: stock, StockMinimoSugerido: minimo}
}

// despachar encola con el notifier corriendo y espera a que el worker drene.
func despachar(t *testing.T, difusor *spyDifusor, email alertas.EmailSender, emails []string, fn func(*alertas.Notifier)) {
	t.Helper()
	n := alertas.NewNotifier(&fakeUsuarioRepo{emails: emails}, email, difusor, logger.Nop(), 16)
	n.Start()
	fn(n)
	n.Close() // espera el drenado de la cola
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Stock sobre el mínimo: solo se emite inventarioActualizado, nunca stockAlert.
func TestStockActualizado_SobreElMinimoNoAlerta(t *testing.T) {
	difusor := &spyDifusor{}
	despachar(t, difusor, nil, nil, func(n *alertas.Notifier) {
		n.StockActualizado(producto("p1", 11, 10))
	})

	eventos := difusor.lista()
	require.Len(t, eventos, 1)
	assert.Equal(t, "inventarioActualizado", eventos[0].nombre)
}

// Stock exactamente en el mínimo: la alerta de stock bajo debe dispararse
// (la condición es ≤, no <).
func TestStockActualizado_EnElMinimoAlerta(t *testing.T) {
	difusor := &spyDifusor{}
	despachar(t, difusor, nil, nil, func(n *alertas.Notifier) {
		n.StockActualizado(producto("p1", 10, 10))
	})

	eventos := difusor.lista()
	require.Len(t, eventos, 2)

	nombres := []string{eventos[0].nombre, eventos[1].nombre}
	assert.Contains(t, nombres, "inventarioActualizado")
	assert.Contains(t, nombres, "stockAlert")

	for _, e := range eventos {
		if e.nombre != "stockAlert" {
			continue
		}
		payload, ok := e.payload.(dto.StockAlertPayload)
		require.True(t, ok)
		assert.Equal(t, "p1", payload.ProductID)
		assert.Equal(t, int64(10), payload.CurrentStock)
		assert.Equal(t, int64(10), payload.SuggestedMinStock)
		assert.Equal(t, "stock_low", payload.Type)
		assert.NotEmpty(t, payload.Timestamp)
	}
}

// InventarioActualizado (recepciones) nunca dispara stockAlert aunque el stock
// quede bajo el mínimo.
func TestInventarioActualizado_NoChequeaStockBajo(t *testing.T) {
	difusor := &spyDifusor{}
	despachar(t, difusor, nil, nil, func(n *alertas.Notifier) {
		n.InventarioActualizado(producto("p1", 0, 10))
	})

	eventos := difusor.lista()
	require.Len(t, eventos, 1)
	assert.Equal(t, "inventarioActualizado", eventos[0].nombre)
}

// La alerta de vencimiento lleva la fecha y el tipo correctos.
func TestAlertaVencimiento_Payload(t *testing.T) {
	vence := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	p := producto("p1", 5, 2)
	p.FechaVencimiento = &vence

	difusor := &spyDifusor{}
	despachar(t, difusor, nil, nil, func(n *alertas.Notifier) {
		n.AlertaVencimiento(p)
	})

	eventos := difusor.lista()
	require.Len(t, eventos, 1)
	require.Equal(t, "expirationAlert", eventos[0].nombre)

	payload, ok := eventos[0].payload.(dto.ExpirationAlertPayload)
	require.True(t, ok)
	assert.Equal(t, "2025-12-24", payload.ExpirationDate)
	assert.Equal(t, "expiration_warning", payload.Type)
}

// Con administradores registrados, la alerta de stock bajo además envía un
// correo dirigido a todos ellos.
func TestStockBajo_CorreoAAdministradores(t *testing.T) {
	difusor := &spyDifusor{}
	email := &spyEmail{}
	despachar(t, difusor, email, []string{"admin1@petstock.cl", "admin2@petstock.cl"}, func(n *alertas.Notifier) {
		n.StockActualizado(producto("p1", 2, 10))
	})

	email.mu.Lock()
	defer email.mu.Unlock()
	require.Len(t, email.envios, 1)
	assert.Contains(t, email.envios[0], "Alerta de stock bajo")
	assert.Equal(t, []string{"admin1@petstock.cl", "admin2@petstock.cl"}, email.destino[0])
}

// Cola llena: el encolado no bloquea ni entra en pánico, la alerta se descarta.
func TestEncolar_ColaLlenaNoBloquea(t *testing.T) {
	difusor := &spyDifusor{}
	// capacidad mínima y sin worker: la segunda alerta no cabe
	n := alertas.NewNotifier(&fakeUsuarioRepo{}, nil, difusor, logger.Nop(), 1)

	hecho := make(chan struct{})
	go func() {
		n.InventarioActualizado(producto("p1", 5, 2))
		n.InventarioActualizado(producto("p2", 5, 2))
		close(hecho)
	}()

	select {
	case <-hecho:
	case <-time.After(time.Second):
		t.Fatal("el encolado con la cola llena no debe bloquear")
	}

	// Drenar: lo encolado (una sola tarea) se entrega al arrancar el worker.
	n.Start()
	n.Close()
	assert.Len(t, difusor.lista(), 1, "la alerta que no cupo se descarta")
}
