package repository

import (
	"context"
	"errors"
	"fmt"

	"wedsite/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type GalleryRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewGalleryRepository(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var albumColumns = []string{
	"id",
	"event_id",
	"name",
	"description",
	"cover_image",
	"is_public",
	"created_at",
	"updated_at",
}

func scanAlbum(row rowScanner) (*models.GalleryAlbum, error) {
	var a models.GalleryAlbum
	err := row.Scan(
		&a.ID,
		&a.EventID,
		&a.Name,
		&a.Description,
		&a.CoverImage,
		&a.IsPublic,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GalleryRepo) CreateAlbum(ctx context.Context, album *models.GalleryAlbum) (*models.GalleryAlbum, error) {
	const op = "repository.GalleryRepo.CreateAlbum"

	query, args, err := r.sb.Insert("gallery_albums").
		Columns("id", "event_id", "name", "description", "cover_image", "is_public").
		Values(album.ID, album.EventID, album.Name, album.Description, album.CoverImage, album.IsPublic).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

func (r *GalleryRepo) GetAlbumByID(ctx context.Context, id uuid.UUID) (*models.GalleryAlbum, error) {
	const op = "repository.GalleryRepo.GetAlbumByID"

	query, args, err := r.sb.Select(albumColumns...).
		From("gallery_albums").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	album, err := scanAlbum(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return album, nil
}

func (r *GalleryRepo) GetEventAlbums(ctx context.Context, eventID uuid.UUID) ([]models.GalleryAlbum, error) {
	const op = "repository.GalleryRepo.GetEventAlbums"

	query, args, err := r.sb.Select(albumColumns...).
		From("gallery_albums").
		Where(sq.Eq{"event_id": eventID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var albums []models.GalleryAlbum
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		albums = append(albums, *album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return albums, nil
}

func (r *GalleryRepo) UpdateAlbum(ctx context.Context, album *models.GalleryAlbum) error {
	const op = "repository.GalleryRepo.UpdateAlbum"

	query, args, err := r.sb.Update("gallery_albums").
		Set("name", album.Name).
		Set("description", album.Description).
		Set("cover_image", album.CoverImage).
		Set("is_public", album.IsPublic).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": album.ID}).
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

// DeleteAlbum removes the album and its image rows together.
func (r *GalleryRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteAlbum"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM gallery_images WHERE album_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM gallery_albums WHERE id = $1`, id)
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

var imageColumns = []string{
	"id",
	"album_id",
	"event_id",
	"file_name",
	"original_filename",
	"file_size",
	"mime_type",
	"image_url",
	"thumbnail_url",
	"uploaded_by",
	"is_approved",
	"metadata",
	"created_at",
}

func scanImage(row rowScanner) (*models.GalleryImage, error) {
	var (
		img        models.GalleryImage
		uploadedBy uuid.NullUUID
	)
	err := row.Scan(
		&img.ID,
		&img.AlbumID,
		&img.EventID,
		&img.FileName,
		&img.OriginalFilename,
		&img.FileSize,
		&img.MimeType,
		&img.ImageURL,
		&img.ThumbnailURL,
		&uploadedBy,
		&img.IsApproved,
		&img.Metadata,
		&img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if uploadedBy.Valid {
		img.UploadedBy = &uploadedBy.UUID
	}
	return &img, nil
}

func (r *GalleryRepo) CreateImage(ctx context.Context, image *models.GalleryImage) (*models.GalleryImage, error) {
	const op = "repository.GalleryRepo.CreateImage"

	query, args, err := r.sb.Insert("gallery_images").
		Columns(
			"id",
			"album_id",
			"event_id",
			"file_name",
			"original_filename",
			"file_size",
			"mime_type",
			"image_url",
			"thumbnail_url",
			"uploaded_by",
			"is_approved",
			"metadata",
		).
		Values(
			image.ID,
			image.AlbumID,
			image.EventID,
			image.FileName,
			image.OriginalFilename,
			image.FileSize,
			image.MimeType,
			image.ImageURL,
			image.ThumbnailURL,
			image.UploadedBy,
			image.IsApproved,
			image.Metadata,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&image.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return image, nil
}

func (r *GalleryRepo) GetImageByID(ctx context.Context, id uuid.UUID) (*models.GalleryImage, error) {
	const op = "repository.GalleryRepo.GetImageByID"

	query, args, err := r.sb.Select(imageColumns...).
		From("gallery_images").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	img, err := scanImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return img, nil
}

// ListImages returns one page of images plus the total count for the same
// filter, newest first.
func (r *GalleryRepo) ListImages(ctx context.Context, filter models.ImageFilter, page, limit int) ([]models.GalleryImage, int, error) {
	const op = "repository.GalleryRepo.ListImages"

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	where := imageFilterConds(filter)

	countBuilder := r.sb.Select("COUNT(*)").From("gallery_images")
	listBuilder := r.sb.Select(imageColumns...).From("gallery_images")
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

	var images []models.GalleryImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: row scanning failed: %w", op, err)
		}
		images = append(images, *img)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: rows iteration error: %w", op, err)
	}

	return images, total, nil
}

func imageFilterConds(filter models.ImageFilter) sq.And {
	conds := sq.And{}
	if filter.AlbumID != nil {
		conds = append(conds, sq.Eq{"album_id": *filter.AlbumID})
	}
	if filter.EventID != nil {
		conds = append(conds, sq.Eq{"event_id": *filter.EventID})
	}
	if filter.Approved != nil {
		conds = append(conds, sq.Eq{"is_approved": *filter.Approved})
	}
	if filter.UploadedBy != nil {
		conds = append(conds, sq.Eq{"uploaded_by": *filter.UploadedBy})
	}
	if filter.DateFrom != nil {
		conds = append(conds, sq.GtOrEq{"created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		conds = append(conds, sq.LtOrEq{"created_at": *filter.DateTo})
	}
	return conds
}

// UpdateImageApproval is the only write path for the moderation flag.
func (r *GalleryRepo) UpdateImageApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	const op = "repository.GalleryRepo.UpdateImageApproval"

	query, args, err := r.sb.Update("gallery_images").
		Set("is_approved", approved).
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

func (r *GalleryRepo) DeleteImage(ctx context.Context, id uuid.UUID) error {
	const op = "repository.GalleryRepo.DeleteImage"

	query, args, err := r.sb.Delete("gallery_images").
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

// GetGalleryStats reads all four dashboard numbers in a single aggregate
// query, so they describe one consistent snapshot.
func (r *GalleryRepo) GetGalleryStats(ctx context.Context, eventID uuid.UUID) (models.GalleryStats, error) {
	const op = "repository.GalleryRepo.GetGalleryStats"

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_approved),
			COUNT(*) FILTER (WHERE NOT is_approved),
			(SELECT COUNT(*) FROM gallery_albums WHERE event_id = $1)
		FROM gallery_images
		WHERE event_id = $1`

	var stats models.GalleryStats
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&stats.TotalImages,
		&stats.ApprovedImages,
		&stats.PendingImages,
		&stats.TotalAlbums,
	)
	if err != nil {
		return models.GalleryStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
