package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Importador-api/internal/application/dto"
	"github.com/jhoicas/Importador-api/internal/domain"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
	"github.com/jhoicas/Importador-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación de operadores: solo clientes con el rol
// Administrators pueden lanzar importaciones.
type AuthUseCase struct {
	customers repository.CustomerRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(customers repository.CustomerRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{customers: customers, jwtCfg: jwtCfg}
}

// Login verifica username (o email) y password contra la tabla de clientes,
// exige el rol Administrators y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	customer, err := uc.customers.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("buscar por username: %w", err)
	}
	if customer == nil {
		customer, err = uc.customers.GetByEmail(ctx, in.Username)
		if err != nil {
			return nil, fmt.Errorf("buscar por email: %w", err)
		}
	}
	if customer == nil || !customer.Active {
		return nil, domain.ErrUnauthorized
	}
	if customer.PasswordFormat != entity.PasswordFormatHashed {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := uc.customers.LoadRoles(ctx, customer); err != nil {
		return nil, fmt.Errorf("cargar roles: %w", err)
	}
	if !customer.HasRole(entity.RoleSystemNameAdministrators) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, customer.CustomerGUID, "admin", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token}, nil
}
