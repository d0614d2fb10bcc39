package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wedsite/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type EventRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewEventRepository(db *pgxpool.Pool) *EventRepo {
	return &EventRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var eventColumns = []string{
	"id",
	"www_id",
	"title",
	"couple_names",
	"event_date",
	"venue",
	"description",
	"organizer_id",
	"status",
	"gallery_enabled",
	"rsvp_enabled",
	"section_visibility",
	"section_content",
	"settings",
	"created_at",
	"updated_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var (
		e           models.Event
		organizerID uuid.NullUUID
		visRaw      []byte
		contentRaw  []byte
		settingsRaw []byte
	)

	err := row.Scan(
		&e.ID,
		&e.WWWID,
		&e.Title,
		&e.CoupleNames,
		&e.EventDate,
		&e.Venue,
		&e.Description,
		&organizerID,
		&e.Status,
		&e.GalleryEnabled,
		&e.RSVPEnabled,
		&visRaw,
		&contentRaw,
		&settingsRaw,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if organizerID.Valid {
		e.OrganizerID = &organizerID.UUID
	}
	if visRaw != nil {
		if err := json.Unmarshal(visRaw, &e.Visibility); err != nil {
			return nil, fmt.Errorf("decode section_visibility: %w", err)
		}
	}
	if contentRaw != nil {
		e.Content = &models.SectionContent{}
		if err := json.Unmarshal(contentRaw, e.Content); err != nil {
			return nil, fmt.Errorf("decode section_content: %w", err)
		}
	}
	if settingsRaw != nil {
		if err := json.Unmarshal(settingsRaw, &e.Settings); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}

	return &e, nil
}

// CreateEvent writes one row. The legacy "date" column is set alongside
// "event_date"; older reporting queries still reference it.
func (r *EventRepo) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	const op = "repository.EventRepo.CreateEvent"

	query, args, err := r.sb.Insert("events").
		Columns(
			"id",
			"www_id",
			"title",
			"couple_names",
			"date",
			"event_date",
			"venue",
			"description",
			"organizer_id",
			"status",
			"gallery_enabled",
			"rsvp_enabled",
			"section_visibility",
			"section_content",
			"settings",
		).
		Values(
			event.ID,
			event.WWWID,
			event.Title,
			event.CoupleNames,
			event.EventDate,
			event.EventDate,
			event.Venue,
			event.Description,
			event.OrganizerID,
			event.Status,
			event.GalleryEnabled,
			event.RSVPEnabled,
			event.Visibility,
			event.Content,
			event.Settings,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (r *EventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const op = "repository.EventRepo.GetEventByID"

	return r.getEvent(ctx, op, sq.Eq{"id": id})
}

func (r *EventRepo) GetEventByWWWID(ctx context.Context, wwwID string) (*models.Event, error) {
	const op = "repository.EventRepo.GetEventByWWWID"

	return r.getEvent(ctx, op, sq.Eq{"www_id": wwwID})
}

func (r *EventRepo) getEvent(ctx context.Context, op string, where sq.Eq) (*models.Event, error) {
	query, args, err := r.sb.Select(eventColumns...).
		From("events").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

// ListEvents returns one page of events and the total count under the same
// filter. The count query shares the WHERE clause so the hasMore computation
// stays consistent with the page contents.
func (r *EventRepo) ListEvents(ctx context.Context, filter models.EventFilter, page, limit int) ([]models.Event, int, error) {
	const op = "repository.EventRepo.ListEvents"

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	where := eventFilterConds(filter)

	countBuilder := r.sb.Select("COUNT(*)").From("events")
	listBuilder := r.sb.Select(eventColumns...).From("events")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
		listBuilder = listBuilder.Where(where)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: can't build count sql: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := listBuilder.
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

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return events, total, nil
}

func eventFilterConds(filter models.EventFilter) sq.And {
	conds := sq.And{}
	if filter.OrganizerID != nil {
		conds = append(conds, sq.Eq{"organizer_id": *filter.OrganizerID})
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		conds = append(conds, sq.GtOrEq{"event_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, sq.LtOrEq{"event_date": *filter.DateTo})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"couple_names": pattern},
		})
	}
	return conds
}

// UpdateEvent writes only the fields present in the patch. A provided section
// document replaces the stored one wholesale; the keyed section patch in the
// service layer is the merge-aware path.
func (r *EventRepo) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) error {
	const op = "repository.EventRepo.UpdateEvent"

	if patch.Empty() {
		return nil
	}

	builder := r.sb.Update("events")
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.CoupleNames != nil {
		builder = builder.Set("couple_names", *patch.CoupleNames)
	}
	if patch.EventDate != nil {
		// both columns, same value: the legacy "date" column tracks event_date
		builder = builder.Set("date", *patch.EventDate).Set("event_date", *patch.EventDate)
	}
	if patch.Venue != nil {
		builder = builder.Set("venue", *patch.Venue)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.OrganizerID != nil {
		builder = builder.Set("organizer_id", *patch.OrganizerID)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.GalleryEnabled != nil {
		builder = builder.Set("gallery_enabled", *patch.GalleryEnabled)
	}
	if patch.RSVPEnabled != nil {
		builder = builder.Set("rsvp_enabled", *patch.RSVPEnabled)
	}
	if patch.Visibility != nil {
		builder = builder.Set("section_visibility", *patch.Visibility)
	}
	if patch.Content != nil {
		builder = builder.Set("section_content", *patch.Content)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}

// DeleteEvent removes the event together with its albums, image rows and RSVP
// responses in one transaction. Remote storage objects are the caller's
// problem; only database state is covered here.
func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "repository.EventRepo.DeleteEvent"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	for _, stmt := range []string{
		`DELETE FROM gallery_images WHERE event_id = $1`,
		`DELETE FROM gallery_albums WHERE event_id = $1`,
		`DELETE FROM event_rsvps WHERE event_id = $1`,
	} {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}
