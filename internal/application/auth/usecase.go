package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret        string
	RefreshSecret string
	ExpMinutes    int
	RefreshDias   int
	Issuer        string
}

// LoginResult login exitoso: respuesta para el cliente más el refresh token
// que el handler debe poner en la cookie http-only.
type LoginResult struct {
	Response     dto.LoginResponse
	RefreshToken string
	RefreshDias  int
}

// UseCase casos de uso de autenticación: registro, login y refresco de tokens.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste. Devuelve
// ErrEmailAlreadyExists si el email ya existe.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	existing, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolEmpleado
	}
	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Nombre:       in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/password, genera access y refresh token, persiste el
// refresh en la fila del usuario y lo devuelve para la cookie.
func (uc *UseCase) Login(in dto.LoginRequest) (*LoginResult, error) {
	usuario, err := uc.usuarioRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	accessToken, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Nombre, usuario.Email, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	refreshToken, err := jwt.GenerateRefresh(uc.jwtCfg.RefreshSecret, usuario.ID, usuario.Nombre, usuario.Email, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.RefreshDias)
	if err != nil {
		return nil, err
	}
	if err := uc.usuarioRepo.UpdateRefreshToken(usuario.ID, refreshToken); err != nil {
		return nil, err
	}

	return &LoginResult{
		Response: dto.LoginResponse{
			AccessToken: accessToken,
			Usuario:     *toUsuarioResponse(usuario),
		},
		RefreshToken: refreshToken,
		RefreshDias:  uc.jwtCfg.RefreshDias,
	}, nil
}

// Refresh valida el refresh token de la cookie: debe estar asociado a un
// usuario y verificar contra el secret de refresco. Emite un nuevo access token.
func (uc *UseCase) Refresh(refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrUnauthorized
	}
	usuario, err := uc.usuarioRepo.GetByRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	if usuario == nil {
		return "", domain.ErrForbidden
	}
	claims, err := jwt.Parse(uc.jwtCfg.RefreshSecret, refreshToken)
	if err != nil || claims.UserID != usuario.ID {
		return "", domain.ErrForbidden
	}
	return jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Nombre, usuario.Email, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

// Logout revoca la sesión de refresco del usuario dueño del token. Token
// desconocido no es error: la cookie igual se limpia.
func (uc *UseCase) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	usuario, err := uc.usuarioRepo.GetByRefreshToken(refreshToken)
	if err != nil {
		return err
	}
	if usuario == nil {
		return nil
	}
	return uc.usuarioRepo.UpdateRefreshToken(usuario.ID, "")
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		CreatedAt: u.CreatedAt,
	}
}
