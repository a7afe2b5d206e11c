package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"storefront/models"
)

type UserRepository struct {
	db DBTX
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password, full_name, phone, address, role, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Phone,
		&user.Address,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, full_name, phone, address, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.FullName,
		user.Phone,
		user.Address,
		user.Role,
		time.Now(),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return dbErr("UserRepository.Create", err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dbErr("UserRepository.FindByEmail", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dbErr("UserRepository.FindByID", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, search string, page, limit int) ([]models.User, int, error) {
	const op = "UserRepository.List"
	offset := (page - 1) * limit
	pattern := containsPattern(search)

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE email ILIKE $1 OR full_name ILIKE $1`
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dbErr(op, err)
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email ILIKE $1 OR full_name ILIKE $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, pattern, limit, offset)
	if err != nil {
		return nil, 0, dbErr(op, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, dbErr(op, err)
		}
		users = append(users, *user)
	}
	return users, total, dbErr(op, rows.Err())
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET full_name = $1, phone = $2, address = $3, password = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		user.FullName, user.Phone, user.Address, user.Password, user.ID,
	).Scan(&user.UpdatedAt)
	return dbErr("UserRepository.UpdateProfile", err)
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`, role, id)
	return expectOne("UserRepository.UpdateRole", tag, err)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return expectOne("UserRepository.Delete", tag, err)
}
