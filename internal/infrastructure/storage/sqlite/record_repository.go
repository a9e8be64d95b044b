package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"vinylscan/internal/domain/record"
)

const recordColumns = `id, user_id, artist, album, year, barcode, genres, styles, musicians,
		       master_url, release_url, notes, added_at, updated_at`

type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewRecordRepository(db *sql.DB, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		db:  db,
		log: log.With(slog.String("component", "record_repository")),
	}
}

func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	genres, err := encodeList(rec.Genres)
	if err != nil {
		return err
	}
	styles, err := encodeList(rec.Styles)
	if err != nil {
		return err
	}
	musicians, err := encodeList(rec.Musicians)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO records (id, user_id, artist, album, year, barcode, genres, styles, musicians,
		                     master_url, release_url, notes, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.UserID, rec.Artist, rec.Album, rec.Year, rec.Barcode,
		genres, styles, musicians,
		rec.MasterURL, rec.ReleaseURL, rec.Notes, formatTime(rec.AddedAt), formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	rec.ID = id
	return nil
}

func (r *RecordRepository) ListByUser(ctx context.Context, userID string) ([]record.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recordColumns+`
		FROM records
		WHERE user_id = ?
		ORDER BY added_at DESC, id`, userID)
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
	row := r.db.QueryRowContext(ctx, `UPDATE records SET notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
		RETURNING `+recordColumns,
		notes, formatTime(updatedAt), recordID, userID)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, userID, recordID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = ? AND user_id = ?`, recordID, userID)
	if err != nil {
		return 0, fmt.Errorf("delete record: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*record.Record, error) {
	var (
		rec                       record.Record
		year                      sql.NullInt64
		genres, styles, musicians string
		addedAt, updatedAt        string
	)

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Artist, &rec.Album, &year, &rec.Barcode,
		&genres, &styles, &musicians,
		&rec.MasterURL, &rec.ReleaseURL, &rec.Notes, &addedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}

	if year.Valid {
		y := int(year.Int64)
		rec.Year = &y
	}
	if rec.Genres, err = decodeList(genres); err != nil {
		return nil, err
	}
	if rec.Styles, err = decodeList(styles); err != nil {
		return nil, err
	}
	if rec.Musicians, err = decodeList(musicians); err != nil {
		return nil, err
	}
	if rec.AddedAt, err = parseTime(addedAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &rec, nil
}
