package repository

import (
	"context"

	"github.com/ABeGood/klim-fit/internal/models"
)

type AdminRepository struct {
	db DBTX
}

func NewAdminRepository(db DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (name, surname, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		admin.Name, admin.Surname, admin.Email, admin.PasswordHash).
		Scan(&admin.ID, &admin.CreatedAt, &admin.UpdatedAt)
}

func (r *AdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	query := `
		SELECT id, name, surname, email, password_hash, created_at, updated_at
		FROM admins
		WHERE id = $1
	`
	var admin models.Admin
	err := r.db.QueryRow(ctx, query, id).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Surname,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	query := `
		SELECT id, name, surname, email, password_hash, created_at, updated_at
		FROM admins
		WHERE email = $1
	`
	var admin models.Admin
	err := r.db.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Surname,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) GetAll(ctx context.Context) ([]models.Admin, error) {
	query := `
		SELECT id, name, surname, email, password_hash, created_at, updated_at
		FROM admins
		ORDER BY surname, name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]models.Admin, 0)
	for rows.Next() {
		var admin models.Admin
		if err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.Surname,
			&admin.Email,
			&admin.PasswordHash,
			&admin.CreatedAt,
			&admin.UpdatedAt,
		); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func (r *AdminRepository) Update(ctx context.Context, admin *models.Admin) error {
	query := `
		UPDATE admins
		SET name = $1, surname = $2, email = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		admin.Name, admin.Surname, admin.Email, admin.ID).
		Scan(&admin.UpdatedAt)
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error) {
	query := `
		UPDATE admins
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`
	tag, err := r.db.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
