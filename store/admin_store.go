package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"folio/api/database"
	"folio/api/models"
)

type AdminStore struct {
	db  *database.DBClient
	log *zap.Logger
}

func NewAdminStore(db *database.DBClient, log *zap.Logger) *AdminStore {
	return &AdminStore{db: db, log: log}
}

// CreateAdmin inserts a dashboard account.
func (s *AdminStore) CreateAdmin(ctx context.Context, email string, hashedPassword []byte) (*models.Admin, error) {
	admin := &models.Admin{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      now(),
	}
	admin.UpdatedAt = admin.CreatedAt

	_, err := s.db.DB.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO admins (id, email, hashed_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`), admin.ID, admin.Email, admin.HashedPassword, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("admin with email '%s': %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.log.Info("admin created", zap.String("id", admin.ID.String()), zap.String("email", admin.Email))
	return admin, nil
}

func (s *AdminStore) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return s.getAdmin(ctx, `email = ?`, email)
}

func (s *AdminStore) GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	return s.getAdmin(ctx, `id = ?`, id)
}

func (s *AdminStore) getAdmin(ctx context.Context, where string, arg any) (*models.Admin, error) {
	admin := &models.Admin{}
	err := s.db.DB.QueryRowContext(ctx, s.db.Rebind(`
		SELECT id, email, hashed_password, created_at, updated_at
		FROM admins
		WHERE `+where), arg).Scan(
		&admin.ID,
		&admin.Email,
		&admin.HashedPassword,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %v: %w", arg, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return admin, nil
}
