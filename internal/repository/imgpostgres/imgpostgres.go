package imgpostgres

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/wb-go/wbf/dbpg"
)

type PostgresRepo struct {
	DB *dbpg.DB
}

func (p PostgresRepo) Create(ctx context.Context, n *model.Image) error {
	query := `INSERT INTO images (image_id, image_url, content_type, description, owner_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := p.DB.Master.ExecContext(ctx, query, n.ImageID, n.ImageURL, n.ContentType, n.Description, n.OwnerID, n.CreatedAt, n.CreatedAt)
	return err
}

func (p PostgresRepo) Get(ctx context.Context, imageID string) (*model.Image, error) {
	query := `SELECT image_id, image_url, content_type, description, owner_id, created_at, updated_at
	FROM images
	WHERE image_id = $1`
	var image model.Image

	err := p.DB.QueryRowContext(ctx, query, imageID).Scan(&image.ImageID,
		&image.ImageURL,
		&image.ContentType,
		&image.Description,
		&image.OwnerID,
		&image.CreatedAt,
		&image.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, model.ErrImageNotFound
		default:
			return nil, err // 500
		}
	}
	return &image, nil
}

func (p PostgresRepo) GetByOwner(ctx context.Context, ownerID string) ([]model.Image, error) {
	query := `SELECT image_id, image_url, content_type, description, owner_id, created_at, updated_at
	FROM images
	WHERE owner_id = $1`

	rows, err := p.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("Error while closing *sql.Rows after scanning: %v", err)
		}
	}()

	images := make([]model.Image, 0)
	for rows.Next() {
		var image model.Image
		if err := rows.Scan(&image.ImageID,
			&image.ImageURL,
			&image.ContentType,
			&image.Description,
			&image.OwnerID,
			&image.CreatedAt,
			&image.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return images, nil
}

// Update touches only the mutable columns; image_id, image_url and owner_id
// are not in the statement at all.
func (p PostgresRepo) Update(ctx context.Context, imageID string, patch *model.ImagePatch) error {
	query := `UPDATE images
	SET content_type = COALESCE($1, content_type),
	    description = COALESCE($2, description),
	    updated_at = now()
	WHERE image_id = $3`

	res, err := p.DB.Master.ExecContext(ctx, query, patch.ContentType, patch.Description, imageID)
	if err != nil {
		return err // 500
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrImageNotFound // 404
	}
	return nil
}

func (p PostgresRepo) Delete(ctx context.Context, imageID string) error {
	query := `DELETE FROM images
	WHERE image_id = $1`

	res, err := p.DB.Master.ExecContext(ctx, query, imageID)
	if err != nil {
		return err // 500
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrImageNotFound // 404
	}
	return nil
}
