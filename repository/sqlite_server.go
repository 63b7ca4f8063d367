package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/topluluk/database"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
)

// sqliteServerRepo, ServerRepository interface'inin SQLite implementasyonu.
type sqliteServerRepo struct {
	db database.TxQuerier
}

// NewSQLiteServerRepo, constructor.
func NewSQLiteServerRepo(db database.TxQuerier) ServerRepository {
	return &sqliteServerRepo{db: db}
}

// ─── Server CRUD ───

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server) error {
	query := `
		INSERT INTO servers (name, owner_id, category_id, description, banner_url, icon_url)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		server.Name, server.OwnerID, server.CategoryID,
		server.Description, server.BannerURL, server.IconURL,
	).Scan(&server.ID, &server.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return nil
}

func (r *sqliteServerRepo) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	query := `
		SELECT s.id, s.name, s.owner_id, s.category_id, c.name,
		       s.description, s.banner_url, s.icon_url, s.created_at
		FROM servers s
		INNER JOIN categories c ON c.id = s.category_id
		WHERE s.id = ?`

	s := &models.Server{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.OwnerID, &s.CategoryID, &s.CategoryName,
		&s.Description, &s.BannerURL, &s.IconURL, &s.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	return s, nil
}

func (r *sqliteServerRepo) GetAll(ctx context.Context) ([]models.Server, error) {
	// id ASC — listing pipeline'ının "mevcut sıralama"sı. qty truncation
	// bu sıraya göre ilk N kaydı alır; sıralama deterministik olmalı.
	query := `
		SELECT s.id, s.name, s.owner_id, s.category_id, c.name,
		       s.description, s.banner_url, s.icon_url, s.created_at
		FROM servers s
		INNER JOIN categories c ON c.id = s.category_id
		ORDER BY s.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get servers: %w", err)
	}
	defer rows.Close()

	var servers []models.Server
	for rows.Next() {
		var s models.Server
		if err := rows.Scan(
			&s.ID, &s.Name, &s.OwnerID, &s.CategoryID, &s.CategoryName,
			&s.Description, &s.BannerURL, &s.IconURL, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan server row: %w", err)
		}
		servers = append(servers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server rows: %w", err)
	}

	return servers, nil
}

func (r *sqliteServerRepo) Update(ctx context.Context, server *models.Server) error {
	query := `
		UPDATE servers
		SET name = ?, category_id = ?, description = ?, banner_url = ?, icon_url = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		server.Name, server.CategoryID, server.Description,
		server.BannerURL, server.IconURL, server.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update server: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteServerRepo) Delete(ctx context.Context, id int64) error {
	// Kanallar ve üyelik kayıtları FK cascade ile silinir.
	result, err := r.db.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

// ─── Üyelik ───

func (r *sqliteServerRepo) AddMember(ctx context.Context, serverID, userID int64) error {
	// INSERT OR IGNORE — tekrar join idempotent'tir.
	query := `INSERT OR IGNORE INTO server_members (server_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, serverID, userID); err != nil {
		return fmt.Errorf("failed to add server member: %w", err)
	}

	return nil
}

func (r *sqliteServerRepo) RemoveMember(ctx context.Context, serverID, userID int64) error {
	query := `DELETE FROM server_members WHERE server_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, serverID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove server member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteServerRepo) IsMember(ctx context.Context, serverID, userID int64) (bool, error) {
	query := `SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ? LIMIT 1`

	var dummy int
	err := r.db.QueryRowContext(ctx, query, serverID, userID).Scan(&dummy)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check server membership: %w", err)
	}

	return true, nil
}

func (r *sqliteServerRepo) GetMemberServerIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT server_id FROM server_members WHERE user_id = ?`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member server ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan server id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server ids: %w", err)
	}

	return ids, nil
}

func (r *sqliteServerRepo) GetMemberCounts(ctx context.Context) (map[int64]int64, error) {
	query := `SELECT server_id, COUNT(user_id) FROM server_members GROUP BY server_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get member counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var serverID, count int64
		if err := rows.Scan(&serverID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan member count row: %w", err)
		}
		counts[serverID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member count rows: %w", err)
	}

	return counts, nil
}
