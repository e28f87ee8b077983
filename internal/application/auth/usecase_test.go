package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/danilalessandra/Petstock-Backend/internal/application/auth"
	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio de usuarios
// ──────────────────────────────────────────────────────────────────────────────

type memUsuarioRepo struct {
	usuarios       map[string]*entity.Usuario // por ID
	failGetByEmail error                      // si no es nil, GetByEmail falla con este error
}

func nuevoRepo(usuarios ...*entity.Usuario) *memUsuarioRepo {
	r := &memUsuarioRepo{usuarios: map[string]*entity.Usuario{}}
	for _, u := range usuarios {
		r.usuarios[u.ID] = u
	}
	return r
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
	if m.failGetByEmail != nil {
		return nil, m.failGetByEmail
	}
	for _, u := range m.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsuarioRepo) GetByRefreshToken(token string) (*entity.Usuario, error) {
	if token == "" {
		return nil, nil
	}
	for _, u := range m.usuarios {
		if u.RefreshToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsuarioRepo) UpdateRefreshToken(id, token string) error {
	if u, ok := m.usuarios[id]; ok {
		u.RefreshToken = token
	}
	return nil
}

func (m *memUsuarioRepo) Update(u *entity.Usuario) error { m.usuarios[u.ID] = u; return nil }

func (m *memUsuarioRepo) List() ([]*entity.Usuario, error) { return nil, nil }

func (m *memUsuarioRepo) Delete(id string) error { delete(m.usuarios, id); return nil }

func (m *memUsuarioRepo) EmailsPorRol(rol string) ([]string, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var cfg = auth.JWTConfig{
	Secret:        "access-secret",
	RefreshSecret: "refresh-secret",
	ExpMinutes:    15,
	RefreshDias:   7,
	Issuer:        "petstock-test",
}

func usuarioConPassword(t *testing.T, email, password, rol string) *entity.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Usuario{
		ID:           "u-" + email,
		Nombre:       "Usuario " + email,
		Email:        email,
		PasswordHash: string(hash),
		Rol:          rol,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_HasheaPasswordYAsignaRolPorDefecto(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewUseCase(repo, cfg)

	out, err := uc.Register(dto.RegisterRequest{
		Nombre:   "Nueva Empleada",
		Email:    "nueva@petstock.cl",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RolEmpleado, out.Rol, "sin rol explícito el registro queda como empleado")

	guardado, _ := repo.GetByEmail("nueva@petstock.cl")
	require.NotNil(t, guardado)
	assert.NotEqual(t, "password123", guardado.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("password123")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := nuevoRepo(usuarioConPassword(t, "dup@petstock.cl", "x", entity.RolEmpleado))
	uc := auth.NewUseCase(repo, cfg)

	_, err := uc.Register(dto.RegisterRequest{
		Nombre:   "Otra",
		Email:    "dup@petstock.cl",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Un fallo del repositorio al chequear el email se propaga tal cual: no debe
// leerse como "email libre" ni convertirse en un duplicado fantasma.
func TestRegister_ErrorDeRepositorioSePropaga(t *testing.T) {
	repo := nuevoRepo()
	repo.failGetByEmail = errors.New("conexión perdida")
	uc := auth.NewUseCase(repo, cfg)

	_, err := uc.Register(dto.RegisterRequest{
		Nombre:   "Cualquiera",
		Email:    "x@petstock.cl",
		Password: "password123",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Contains(t, err.Error(), "conexión perdida")
	assert.Empty(t, repo.usuarios, "ante la duda no se crea ningún usuario")
}

// Login correcto emite un access token con los claims del usuario y persiste
// el refresh token en su fila.
func TestLogin_EmiteTokensYPersisteRefresh(t *testing.T) {
	u := usuarioConPassword(t, "admin@petstock.cl", "clave-segura", entity.RolAdministrador)
	repo := nuevoRepo(u)
	uc := auth.NewUseCase(repo, cfg)

	res, err := uc.Login(dto.LoginRequest{Email: "admin@petstock.cl", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Response.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, cfg.RefreshDias, res.RefreshDias)

	claims, err := jwt.Parse(cfg.Secret, res.Response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RolAdministrador, claims.Rol)

	assert.Equal(t, res.RefreshToken, repo.usuarios[u.ID].RefreshToken,
		"el refresh token queda asociado al usuario")
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	repo := nuevoRepo(usuarioConPassword(t, "admin@petstock.cl", "correcta", entity.RolAdministrador))
	uc := auth.NewUseCase(repo, cfg)

	_, err := uc.Login(dto.LoginRequest{Email: "admin@petstock.cl", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc := auth.NewUseCase(nuevoRepo(), cfg)
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@petstock.cl", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Refresh con el token persistido emite un access token nuevo y válido.
func TestRefresh_TokenValido(t *testing.T) {
	u := usuarioConPassword(t, "emp@petstock.cl", "clave", entity.RolEmpleado)
	repo := nuevoRepo(u)
	uc := auth.NewUseCase(repo, cfg)

	res, err := uc.Login(dto.LoginRequest{Email: "emp@petstock.cl", Password: "clave"})
	require.NoError(t, err)

	access, err := uc.Refresh(res.RefreshToken)
	require.NoError(t, err)

	claims, err := jwt.Parse(cfg.Secret, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

// Refresh sin cookie → ErrUnauthorized; token ajeno a todo usuario → ErrForbidden.
func TestRefresh_TokenVacioODesconocido(t *testing.T) {
	uc := auth.NewUseCase(nuevoRepo(), cfg)

	_, err := uc.Refresh("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Refresh("token-que-nadie-tiene")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un refresh token revocado por logout deja de servir aunque su firma siga
// siendo válida.
func TestLogout_RevocaElRefresh(t *testing.T) {
	u := usuarioConPassword(t, "emp@petstock.cl", "clave", entity.RolEmpleado)
	repo := nuevoRepo(u)
	uc := auth.NewUseCase(repo, cfg)

	res, err := uc.Login(dto.LoginRequest{Email: "emp@petstock.cl", Password: "clave"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(res.RefreshToken))
	assert.Empty(t, repo.usuarios[u.ID].RefreshToken)

	_, err = uc.Refresh(res.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrForbidden, "el token revocado ya no refresca sesión")
}

func TestLogout_TokenDesconocidoNoEsError(t *testing.T) {
	uc := auth.NewUseCase(nuevoRepo(), cfg)
	assert.NoError(t, uc.Logout("token-desconocido"))
}
