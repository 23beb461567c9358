package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Importador-api/internal/domain"
	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `
	id, customer_guid, username, email, password, password_format, password_salt,
	admin_comment, is_tax_exempt, affiliate_id, active, is_system_account,
	system_name, created_on_utc, last_activity_date_utc,
	billing_address_id, shipping_address_id`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CustomerGUID, &c.Username, &c.Email, &c.Password, &c.PasswordFormat,
		&c.PasswordSalt, &c.AdminComment, &c.IsTaxExempt, &c.AffiliateID, &c.Active,
		&c.IsSystemAccount, &c.SystemName, &c.CreatedOnUTC, &c.LastActivityDateUTC,
		&c.BillingAddressID, &c.ShippingAddressID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}

// GetByID obtiene un cliente por ID interno.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	return scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customer WHERE id = $1`, id))
}

// GetByGUID obtiene un cliente por su GUID estable.
func (r *CustomerRepo) GetByGUID(ctx context.Context, guid string) (*entity.Customer, error) {
	return scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customer WHERE customer_guid = $1`, guid))
}

// GetByEmail obtiene un cliente por email (sin distinguir mayúsculas).
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customer WHERE lower(email) = lower($1)`, email))
}

// GetByUsername obtiene un cliente por username (sin distinguir mayúsculas).
func (r *CustomerRepo) GetByUsername(ctx context.Context, username string) (*entity.Customer, error) {
	return scanCustomer(r.q.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customer WHERE lower(username) = lower($1)`, username))
}

// InsertBatch persiste clientes nuevos y les asigna el ID generado.
func (r *CustomerRepo) InsertBatch(ctx context.Context, customers []*entity.Customer) (int, error) {
	query := `
		INSERT INTO customer (customer_guid, username, email, password, password_format,
			password_salt, admin_comment, is_tax_exempt, affiliate_id, active,
			is_system_account, system_name, created_on_utc, last_activity_date_utc,
			billing_address_id, shipping_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`
	inserted := 0
	for _, c := range customers {
		err := r.q.QueryRow(ctx, query,
			c.CustomerGUID, c.Username, c.Email, c.Password, c.PasswordFormat,
			c.PasswordSalt, c.AdminComment, c.IsTaxExempt, c.AffiliateID, c.Active,
			c.IsSystemAccount, c.SystemName, c.CreatedOnUTC, c.LastActivityDateUTC,
			c.BillingAddressID, c.ShippingAddressID,
		).Scan(&c.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return inserted, domain.ErrDuplicate
			}
			return inserted, fmt.Errorf("insert customer: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// UpdateBatch actualiza clientes existentes; retorna cuántos afectó.
func (r *CustomerRepo) UpdateBatch(ctx context.Context, customers []*entity.Customer) (int, error) {
	updated := 0
	for _, c := range customers {
		if err := r.Update(ctx, c); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// Update actualiza un único cliente, vínculos billing/shipping incluidos.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customer SET customer_guid = $2, username = $3, email = $4, password = $5,
			password_format = $6, password_salt = $7, admin_comment = $8, is_tax_exempt = $9,
			affiliate_id = $10, active = $11, is_system_account = $12, system_name = $13,
			created_on_utc = $14, last_activity_date_utc = $15,
			billing_address_id = $16, shipping_address_id = $17
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CustomerGUID, c.Username, c.Email, c.Password, c.PasswordFormat,
		c.PasswordSalt, c.AdminComment, c.IsTaxExempt, c.AffiliateID, c.Active,
		c.IsSystemAccount, c.SystemName, c.CreatedOnUTC, c.LastActivityDateUTC,
		c.BillingAddressID, c.ShippingAddressID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// LoadRoles carga la colección de roles del cliente.
func (r *CustomerRepo) LoadRoles(ctx context.Context, c *entity.Customer) error {
	query := `
		SELECT cr.id, cr.name, cr.system_name, cr.active, cr.is_system_role
		FROM customer_role cr
		JOIN customer_customer_role_mapping m ON m.customer_role_id = cr.id
		WHERE m.customer_id = $1
		ORDER BY cr.id`
	rows, err := r.q.Query(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("load roles: %w", err)
	}
	defer rows.Close()
	c.Roles = nil
	for rows.Next() {
		var role entity.CustomerRole
		if err := rows.Scan(&role.ID, &role.Name, &role.SystemName, &role.Active, &role.IsSystemRole); err != nil {
			return fmt.Errorf("scan role: %w", err)
		}
		c.Roles = append(c.Roles, &role)
	}
	return rows.Err()
}

// SaveRoles sincroniza el mapping de roles con la colección en memoria.
func (r *CustomerRepo) SaveRoles(ctx context.Context, c *entity.Customer) error {
	if _, err := r.q.Exec(ctx,
		`DELETE FROM customer_customer_role_mapping WHERE customer_id = $1`, c.ID); err != nil {
		return fmt.Errorf("limpiar mapping de roles: %w", err)
	}
	for _, role := range c.Roles {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO customer_customer_role_mapping (customer_id, customer_role_id) VALUES ($1, $2)`,
			c.ID, role.ID); err != nil {
			return fmt.Errorf("insertar mapping de rol: %w", err)
		}
	}
	return nil
}

// LoadAddresses carga las direcciones vinculadas al cliente.
func (r *CustomerRepo) LoadAddresses(ctx context.Context, c *entity.Customer) error {
	query := `
		SELECT a.id, a.first_name, a.last_name, a.email, a.company, a.country_id,
			a.state_province_id, a.city, a.address1, a.address2, a.zip_postal_code,
			a.phone_number, a.fax_number, a.created_on_utc
		FROM address a
		JOIN customer_address_mapping m ON m.address_id = a.id
		WHERE m.customer_id = $1
		ORDER BY a.id`
	rows, err := r.q.Query(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("load addresses: %w", err)
	}
	defer rows.Close()
	c.Addresses = nil
	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Company,
			&a.CountryID, &a.StateProvinceID, &a.City, &a.Address1, &a.Address2,
			&a.ZipPostalCode, &a.PhoneNumber, &a.FaxNumber, &a.CreatedOnUTC); err != nil {
			return fmt.Errorf("scan address: %w", err)
		}
		c.Addresses = append(c.Addresses, &a)
	}
	return rows.Err()
}

// SaveAddresses inserta las direcciones nuevas (ID == 0) asignándoles ID y
// asegura el mapping cliente-dirección de toda la colección.
func (r *CustomerRepo) SaveAddresses(ctx context.Context, c *entity.Customer) error {
	insert := `
		INSERT INTO address (first_name, last_name, email, company, country_id,
			state_province_id, city, address1, address2, zip_postal_code,
			phone_number, fax_number, created_on_utc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	for _, a := range c.Addresses {
		if a.ID == 0 {
			err := r.q.QueryRow(ctx, insert,
				a.FirstName, a.LastName, a.Email, a.Company, a.CountryID,
				a.StateProvinceID, a.City, a.Address1, a.Address2, a.ZipPostalCode,
				a.PhoneNumber, a.FaxNumber, a.CreatedOnUTC,
			).Scan(&a.ID)
			if err != nil {
				return fmt.Errorf("insert address: %w", err)
			}
		}
		if _, err := r.q.Exec(ctx,
			`INSERT INTO customer_address_mapping (customer_id, address_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`, c.ID, a.ID); err != nil {
			return fmt.Errorf("insert address mapping: %w", err)
		}
	}
	return nil
}
