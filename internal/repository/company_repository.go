package repository

import (
	"context"

	"studentshub/internal/database"
	"studentshub/internal/domain/profile"

	"github.com/google/uuid"
)

type PostgresCompanyRepository struct {
	db database.Querier
}

func NewPostgresCompanyRepository(db database.Querier) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, user_id, company_name, description, industry, website, location, logo_url,
	verification_status, created_at, updated_at`

func scanCompany(row database.Row) (profile.Company, error) {
	var c profile.Company
	var status string
	if err := row.Scan(&c.ID, &c.UserID, &c.CompanyName, &c.Description, &c.Industry, &c.Website, &c.Location, &c.LogoURL,
		&status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return profile.Company{}, err
	}
	c.VerificationStatus = profile.VerificationStatus(status)
	return c, nil
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (profile.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return profile.Company{}, translate(err, "get company")
	}
	return c, nil
}

func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID))
	if err != nil {
		return profile.Company{}, translate(err, "get company by user")
	}
	return c, nil
}

func (r *PostgresCompanyRepository) Upsert(ctx context.Context, c profile.Company) (profile.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.VerificationStatus == "" {
		c.VerificationStatus = profile.VerificationUnverified
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (id, user_id, company_name, description, industry, website, location, logo_url, verification_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			description = EXCLUDED.description,
			industry = EXCLUDED.industry,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			logo_url = EXCLUDED.logo_url,
			updated_at = now()
		 RETURNING `+companyColumns,
		c.ID, c.UserID, c.CompanyName, c.Description, c.Industry, c.Website, c.Location, c.LogoURL, string(c.VerificationStatus),
	)
	out, err := scanCompany(row)
	if err != nil {
		return profile.Company{}, translate(err, "upsert company")
	}
	return out, nil
}

func (r *PostgresCompanyRepository) SetVerification(ctx context.Context, id uuid.UUID, status profile.VerificationStatus) (profile.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies SET verification_status = $2, updated_at = now() WHERE id = $1 RETURNING `+companyColumns,
		id, string(status),
	)
	out, err := scanCompany(row)
	if err != nil {
		return profile.Company{}, translate(err, "set company verification")
	}
	return out, nil
}
