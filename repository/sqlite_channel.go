package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/topluluk/database"
	"github.com/akinalp/topluluk/models"
	"github.com/akinalp/topluluk/pkg"
)

// sqliteChannelRepo, ChannelRepository interface'inin SQLite implementasyonu.
type sqliteChannelRepo struct {
	db database.TxQuerier
}

// NewSQLiteChannelRepo, constructor.
func NewSQLiteChannelRepo(db database.TxQuerier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (server_id, owner_id, name, topic)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		channel.ServerID, channel.OwnerID, channel.Name, channel.Topic,
	).Scan(&channel.ID, &channel.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

func (r *sqliteChannelRepo) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	query := `
		SELECT id, server_id, owner_id, name, topic, created_at
		FROM channels WHERE id = ?`

	ch := &models.Channel{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ch.ID, &ch.ServerID, &ch.OwnerID, &ch.Name, &ch.Topic, &ch.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel by id: %w", err)
	}

	return ch, nil
}

func (r *sqliteChannelRepo) GetByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	query := `
		SELECT id, server_id, owner_id, name, topic, created_at
		FROM channels WHERE server_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels by server: %w", err)
	}
	defer rows.Close()

	return scanChannels(rows)
}

func (r *sqliteChannelRepo) GetByServers(ctx context.Context, serverIDs []int64) (map[int64][]models.Channel, error) {
	grouped := make(map[int64][]models.Channel)
	if len(serverIDs) == 0 {
		return grouped, nil
	}

	// IN (?, ?, ...) placeholder'larını dinamik oluştur.
	// database/sql slice parametresi desteklemez — tek yol budur.
	placeholders := strings.Repeat("?,", len(serverIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(serverIDs))
	for i, id := range serverIDs {
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, server_id, owner_id, name, topic, created_at
		FROM channels WHERE server_id IN (%s) ORDER BY id ASC`, placeholders)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels by servers: %w", err)
	}
	defer rows.Close()

	channels, err := scanChannels(rows)
	if err != nil {
		return nil, err
	}

	for _, ch := range channels {
		grouped[ch.ServerID] = append(grouped[ch.ServerID], ch)
	}

	return grouped, nil
}

func (r *sqliteChannelRepo) Update(ctx context.Context, channel *models.Channel) error {
	query := `UPDATE channels SET name = ?, topic = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, channel.Name, channel.Topic, channel.ID)
	if err != nil {
		return fmt.Errorf("failed to update channel: %w", err)
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

func (r *sqliteChannelRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM channels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
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

// scanChannels, rows'tan channel listesi okur — GetByServer/GetByServers ortak yolu.
func scanChannels(rows *sql.Rows) ([]models.Channel, error) {
	var channels []models.Channel
	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(&ch.ID, &ch.ServerID, &ch.OwnerID, &ch.Name, &ch.Topic, &ch.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return channels, nil
}
