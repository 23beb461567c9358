package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Importador-api/internal/application/auth"
	"github.com/jhoicas/Importador-api/internal/application/dto"
	"github.com/jhoicas/Importador-api/internal/domain"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/Importador-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeCustomers stub del repositorio con un único cliente.
type fakeCustomers struct {
	repository.CustomerRepository
	customer *entity.Customer
	roles    []*entity.CustomerRole
}

func (f *fakeCustomers) GetByUsername(_ context.Context, username string) (*entity.Customer, error) {
	if f.customer != nil && f.customer.Username == username {
		return f.customer, nil
	}
	return nil, nil
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	if f.customer != nil && f.customer.Email == email {
		return f.customer, nil
	}
	return nil, nil
}

func (f *fakeCustomers) LoadRoles(_ context.Context, customer *entity.Customer) error {
	customer.Roles = f.roles
	return nil
}

func adminCustomer(t *testing.T, password string) *entity.Customer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.Customer{
		CustomerGUID:   "00000000-0000-0000-0000-000000000001",
		Username:       "admin",
		Email:          "admin@tienda.co",
		Password:       string(hash),
		PasswordFormat: entity.PasswordFormatHashed,
		Active:         true,
	}
}

func newUC(customers repository.CustomerRepository) *auth.AuthUseCase {
	return auth.NewAuthUseCase(customers, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "importador-test",
	})
}

func TestLogin_AdminValidoRecibeToken(t *testing.T) {
	admin := adminCustomer(t, "clave-segura")
	uc := newUC(&fakeCustomers{
		customer: admin,
		roles:    []*entity.CustomerRole{{ID: 4, SystemName: entity.RoleSystemNameAdministrators}},
	})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.CustomerGUID, userID)
	assert.Equal(t, "admin", role)
}

// El login con el email en lugar del username también resuelve.
func TestLogin_PorEmail(t *testing.T) {
	uc := newUC(&fakeCustomers{
		customer: adminCustomer(t, "clave-segura"),
		roles:    []*entity.CustomerRole{{SystemName: entity.RoleSystemNameAdministrators}},
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin@tienda.co", Password: "clave-segura"})
	assert.NoError(t, err)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newUC(&fakeCustomers{
		customer: adminCustomer(t, "clave-segura"),
		roles:    []*entity.CustomerRole{{SystemName: entity.RoleSystemNameAdministrators}},
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un cliente sin el rol de administrador no puede operar la importación.
func TestLogin_SinRolAdminEsRechazado(t *testing.T) {
	uc := newUC(&fakeCustomers{
		customer: adminCustomer(t, "clave-segura"),
		roles:    []*entity.CustomerRole{{SystemName: entity.RoleSystemNameRegistered}},
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ClienteInexistente(t *testing.T) {
	uc := newUC(&fakeCustomers{})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_ClienteInactivo(t *testing.T) {
	admin := adminCustomer(t, "clave-segura")
	admin.Active = false
	uc := newUC(&fakeCustomers{
		customer: admin,
		roles:    []*entity.CustomerRole{{SystemName: entity.RoleSystemNameAdministrators}},
	})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
