package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/record"
)

const recordColumns = `id, user_id, artist, album, year, barcode, genres, styles, musicians,
		       master_url, release_url, notes, added_at, updated_at`

type RecordRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRecordRepository(pool *pgxpool.Pool, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		pool: pool,
		log:  log.With(slog.String("component", "record_repository")),
	}
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	const query = `
		INSERT INTO records (id, user_id, artist, album, year, barcode, genres, styles, musicians,
		                     master_url, release_url, notes, added_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	id := uuid.NewString()
	_, err := r.pool.Exec(ctx, query,
		id, rec.UserID, rec.Artist, rec.Album, rec.Year, rec.Barcode,
		textArray(rec.Genres), textArray(rec.Styles), textArray(rec.Musicians),
		rec.MasterURL, rec.ReleaseURL, rec.Notes, rec.AddedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	rec.ID = id
	return nil
}

func (r *RecordRepository) ListByUser(ctx context.Context, userID string) ([]record.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = $1
		ORDER BY added_at DESC, id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) UpdateNotes(ctx context.Context, userID, recordID, notes string, updatedAt time.Time) (*record.Record, error) {
	query := `UPDATE records SET notes = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
		RETURNING ` + recordColumns

	rec, err := scanRecord(r.pool.QueryRow(ctx, query, notes, updatedAt, recordID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, userID, recordID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, recordID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete record: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(row pgx.Row) (*record.Record, error) {
	var rec record.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Artist, &rec.Album, &rec.Year, &rec.Barcode,
		&rec.Genres, &rec.Styles, &rec.Musicians,
		&rec.MasterURL, &rec.ReleaseURL, &rec.Notes, &rec.AddedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	rec.AddedAt = rec.AddedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

// textArray keeps nil lists from being sent as NULL into NOT NULL array columns.
func textArray(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
