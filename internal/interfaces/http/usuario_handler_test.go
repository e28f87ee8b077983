package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilalessandra/Petstock-Backend/internal/application/auth"
	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/usecase"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	apphttp "github.com/danilalessandra/Petstock-Backend/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios map[string]*entity.Usuario
}

func (m *memUsuarioRepo) Create(u *entity.Usuario) error { m.usuarios[u.ID] = u; return nil }

func (m *memUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, ok := m.usuarios[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (m *memUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	for _, u := range m.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsuarioRepo) GetByRefreshToken(string) (*entity.Usuario, error) { return nil, nil }
func (m *memUsuarioRepo) UpdateRefreshToken(string, string) error           { return nil }
func (m *memUsuarioRepo) Update(u *entity.Usuario) error                    { m.usuarios[u.ID] = u; return nil }
func (m *memUsuarioRepo) List() ([]*entity.Usuario, error)                  { return nil, nil }
func (m *memUsuarioRepo) Delete(id string) error                            { delete(m.usuarios, id); return nil }
func (m *memUsuarioRepo) EmailsPorRol(string) ([]string, error)             { return nil, nil }

func buildUsuariosApp(repo *memUsuarioRepo) *fiber.App {
	authUC := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:        testJWTSecret,
		RefreshSecret: "refresh-" + testJWTSecret,
		ExpMinutes:    testExpMin,
		RefreshDias:   7,
		Issuer:        testIssuer,
	})
	h := apphttp.NewUsuarioHandler(usecase.NewUsuarioUseCase(repo), authUC)
	app := fiber.New()
	app.Post("/usuarios", h.Create)
	return app
}

func postUsuario(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/usuarios", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del alta de usuarios desde administración
// ──────────────────────────────────────────────────────────────────────────────

func TestUsuarioCreate_AltaConRol(t *testing.T) {
	repo := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{}}
	app := buildUsuariosApp(repo)

	resp := postUsuario(t, app, `{"nombre":"Nueva Admin","email":"nueva@petstock.cl","password":"clave-segura","rol":"administrador"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.UsuarioResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.RolAdministrador, out.Rol)

	guardado, _ := repo.GetByEmail("nueva@petstock.cl")
	require.NotNil(t, guardado, "el usuario debe quedar persistido")
	assert.NotEqual(t, "clave-segura", guardado.PasswordHash)
}

func TestUsuarioCreate_EmailDuplicado(t *testing.T) {
	repo := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{
		"u1": {ID: "u1", Email: "dup@petstock.cl", Rol: entity.RolEmpleado},
	}}
	app := buildUsuariosApp(repo)

	resp := postUsuario(t, app, `{"nombre":"Otra","email":"dup@petstock.cl","password":"clave-segura"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUsuarioCreate_PasswordCorta(t *testing.T) {
	repo := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{}}
	app := buildUsuariosApp(repo)

	resp := postUsuario(t, app, `{"nombre":"Otra","email":"corta@petstock.cl","password":"corta"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, repo.usuarios)
}
