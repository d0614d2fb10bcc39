package repository

import (
	"context"
	"fmt"

	"wedsite/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type RSVPRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewRSVPRepository(db *pgxpool.Pool) *RSVPRepo {
	return &RSVPRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RSVPRepo) CreateRSVP(ctx context.Context, rsvp *models.RSVP) (*models.RSVP, error) {
	const op = "repository.RSVPRepo.CreateRSVP"

	query, args, err := r.sb.Insert("event_rsvps").
		Columns(
			"id",
			"event_id",
			"guest_name",
			"guest_email",
			"status",
			"plus_ones",
			"menu_choices",
			"note",
		).
		Values(
			rsvp.ID,
			rsvp.EventID,
			rsvp.GuestName,
			rsvp.GuestEmail,
			rsvp.Status,
			rsvp.PlusOnes,
			pq.Array(rsvp.MenuChoices),
			rsvp.Note,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&rsvp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return rsvp, nil
}

func (r *RSVPRepo) GetEventRSVPs(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.RSVP, int, error) {
	const op = "repository.RSVPRepo.GetEventRSVPs"

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int
	countQuery, countArgs, err := r.sb.Select("COUNT(*)").
		From("event_rsvps").
		Where(sq.Eq{"event_id": eventID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: can't build count sql: %w", op, err)
	}
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(
		"id",
		"event_id",
		"guest_name",
		"guest_email",
		"status",
		"plus_ones",
		"menu_choices",
		"note",
		"created_at",
	).
		From("event_rsvps").
		Where(sq.Eq{"event_id": eventID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rsvps []models.RSVP
	for rows.Next() {
		var rsvp models.RSVP
		err := rows.Scan(
			&rsvp.ID,
			&rsvp.EventID,
			&rsvp.GuestName,
			&rsvp.GuestEmail,
			&rsvp.Status,
			&rsvp.PlusOnes,
			pq.Array(&rsvp.MenuChoices),
			&rsvp.Note,
			&rsvp.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		rsvps = append(rsvps, rsvp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return rsvps, total, nil
}

// GetRSVPStats aggregates responses in one query (same snapshot guarantee as
// the gallery stats).
func (r *RSVPRepo) GetRSVPStats(ctx context.Context, eventID uuid.UUID) (models.RSVPStats, error) {
	const op = "repository.RSVPRepo.GetRSVPStats"

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'attending'),
			COUNT(*) FILTER (WHERE status = 'not_attending'),
			COUNT(*) FILTER (WHERE status = 'maybe'),
			COALESCE(SUM(plus_ones) FILTER (WHERE status = 'attending'), 0),
			COUNT(*)
		FROM event_rsvps
		WHERE event_id = $1`

	var stats models.RSVPStats
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&stats.Attending,
		&stats.NotAttending,
		&stats.Maybe,
		&stats.PlusOnes,
		&stats.Total,
	)
	if err != nil {
		return models.RSVPStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
