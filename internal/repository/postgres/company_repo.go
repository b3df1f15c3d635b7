package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/keiri-hq/keiri-backend/internal/domain"
)

const companyColumns = `id, name, legal_form, fiscal_closing_month,
	withholding_income_tax_payment_schedule, resident_tax_payment_schedule,
	location_code, address, representative_name, contact_email, contact_phone,
	created_at, updated_at`

// CompanyRepository implements domain.CompanyRepository using PostgreSQL
type CompanyRepository struct {
	db DBTX
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db DBTX) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create inserts a company. An ID is assigned when the company has none.
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) (*domain.Company, error) {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO companies (id, name, legal_form, fiscal_closing_month,
			withholding_income_tax_payment_schedule, resident_tax_payment_schedule,
			location_code, address, representative_name, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		company.ID,
		company.Name,
		string(company.LegalForm),
		toPgInt4(company.FiscalClosingMonth),
		scheduleToPgText(company.WithholdingSchedule),
		scheduleToPgText(company.ResidentSchedule),
		toPgText(company.LocationCode),
		toPgText(company.Address),
		toPgText(company.RepresentativeName),
		toPgText(company.ContactEmail),
		toPgText(company.ContactPhone),
	).Scan(&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return company, nil
}

// GetByID retrieves a company by its ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// ListIDs returns every company ID, oldest first
func (r *CompanyRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM companies ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var (
		c           domain.Company
		legalForm   string
		fiscalMonth pgtype.Int4
		withholding pgtype.Text
		resident    pgtype.Text
		location    pgtype.Text
		address     pgtype.Text
		rep         pgtype.Text
		email       pgtype.Text
		phone       pgtype.Text
	)
	err := row.Scan(
		&c.ID, &c.Name, &legalForm, &fiscalMonth,
		&withholding, &resident,
		&location, &address, &rep, &email, &phone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.LegalForm = domain.LegalForm(legalForm)
	if fiscalMonth.Valid {
		c.FiscalClosingMonth = &fiscalMonth.Int32
	}
	c.WithholdingSchedule = pgTextToSchedule(withholding)
	c.ResidentSchedule = pgTextToSchedule(resident)
	c.LocationCode = fromPgText(location)
	c.Address = fromPgText(address)
	c.RepresentativeName = fromPgText(rep)
	c.ContactEmail = fromPgText(email)
	c.ContactPhone = fromPgText(phone)
	return &c, nil
}

func toPgInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func fromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}

func scheduleToPgText(s *domain.PaymentSchedule) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*s), Valid: true}
}

func pgTextToSchedule(t pgtype.Text) *domain.PaymentSchedule {
	if !t.Valid {
		return nil
	}
	s := domain.PaymentSchedule(t.String)
	return &s
}
