package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/azaliaz/feedbackhub/internal/domain/consts"
	"github.com/azaliaz/feedbackhub/internal/domain/models"
	"github.com/azaliaz/feedbackhub/internal/logger"
	storerrors "github.com/azaliaz/feedbackhub/internal/storage/errors"
)

type DBStorage struct {
	conn *pgx.Conn
}

func NewDB(ctx context.Context, addr string) (*DBStorage, error) {
	conn, err := pgx.Connect(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &DBStorage{
		conn: conn,
	}, nil
}

func (dbs *DBStorage) SaveFeedback(feedback models.Feedback) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	_, err := dbs.conn.Exec(ctx, `
		INSERT INTO feedbacks (id, name, email, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, feedback.ID, feedback.Name, feedback.Email, feedback.Feedback, feedback.CreatedAt, feedback.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			log.Warn().Str("fid", feedback.ID).Msg("duplicate feedback id")
			return storerrors.ErrFeedbackExists
		}
		log.Error().Err(err).Msg("failed to save feedback")
		return err
	}

	log.Info().Str("fid", feedback.ID).Msg("feedback saved successfully")
	return nil
}

func (dbs *DBStorage) GetFeedback(fid string) (models.Feedback, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	row := dbs.conn.QueryRow(ctx, `
		SELECT id, name, email, feedback, created_at, updated_at
		FROM feedbacks WHERE id = $1
	`, fid)

	var fb models.Feedback
	if err := row.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Feedback, &fb.CreatedAt, &fb.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Feedback{}, storerrors.ErrFeedbackNotFound
		}
		log.Error().Err(err).Msg("failed scan db data")
		return models.Feedback{}, err
	}
	return fb, nil
}

// GetFeedbacks returns all records ordered by created_at descending. The
// newest-first order is part of the storage contract.
func (dbs *DBStorage) GetFeedbacks() ([]models.Feedback, error) {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	rows, err := dbs.conn.Query(ctx, `
		SELECT id, name, email, feedback, created_at, updated_at
		FROM feedbacks ORDER BY created_at DESC
	`)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedbacks")
		return nil, err
	}
	defer rows.Close()

	feedbacks := make([]models.Feedback, 0)
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Feedback, &fb.CreatedAt, &fb.UpdatedAt); err != nil {
			log.Error().Err(err).Msg("failed to scan feedback row")
			return nil, err
		}
		feedbacks = append(feedbacks, fb)
	}

	if rows.Err() != nil {
		log.Error().Err(rows.Err()).Msg("rows iteration error")
		return nil, rows.Err()
	}
	return feedbacks, nil
}

func (dbs *DBStorage) UpdateFeedback(feedback models.Feedback) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	res, err := dbs.conn.Exec(ctx, `
		UPDATE feedbacks SET name = $1, email = $2, feedback = $3, updated_at = $4
		WHERE id = $5
	`, feedback.Name, feedback.Email, feedback.Feedback, feedback.UpdatedAt, feedback.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to update feedback")
		return err
	}
	if res.RowsAffected() == 0 {
		log.Warn().Str("fid", feedback.ID).Msg("feedback not found")
		return storerrors.ErrFeedbackNotFound
	}
	log.Info().Str("fid", feedback.ID).Msg("feedback updated successfully")
	return nil
}

func (dbs *DBStorage) DeleteFeedback(fid string) error {
	log := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), consts.DBCtxTimeout)
	defer cancel()

	res, err := dbs.conn.Exec(ctx, `DELETE FROM feedbacks WHERE id = $1`, fid)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")
		return err
	}
	if res.RowsAffected() == 0 {
		log.Warn().Str("fid", fid).Msg("feedback not found")
		return storerrors.ErrFeedbackNotFound
	}
	log.Info().Str("fid", fid).Msg("feedback deleted successfully")
	return nil
}

func Migrations(dbDsn string, migrationsPath string) error {
	log := logger.Get()
	migratePath := fmt.Sprintf("file://%s", migrationsPath)
	m, err := migrate.New(migratePath, dbDsn)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no migrations to apply")
			return nil
		}
		return err
	}
	log.Info().Msg("all migrations applied")
	return nil
}
