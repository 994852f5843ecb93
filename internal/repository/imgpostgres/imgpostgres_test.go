package imgpostgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"
)

func newRepoWithMock(t *testing.T) (PostgresRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	pg := &dbpg.DB{Master: db}

	repo := PostgresRepo{DB: pg}

	return repo, mock
}

// CREATE - SUCCESS
func TestPostgresRepo_Create_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	ctime := time.Now()
	img := &model.Image{
		ImageID:     uuid.New().String(),
		ImageURL:    "https://images.example.com/abc",
		ContentType: model.PNG,
		Description: "holiday",
		OwnerID:     "user-1",
		CreatedAt:   &ctime,
	}

	mock.ExpectExec(`INSERT INTO images`).
		WithArgs(
			img.ImageID,
			img.ImageURL,
			img.ContentType,
			img.Description,
			img.OwnerID,
			img.CreatedAt,
			img.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), img)
	require.NoError(t, err)
}

// CREATE - POOL CONNECTION IS RETURNED AFTER EVERY WRITE
func TestPostgresRepo_Create_ReleasesConnection(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	repo.DB.Master.SetMaxOpenConns(1)

	img := &model.Image{
		ImageID:     uuid.New().String(),
		ImageURL:    "https://images.example.com/abc",
		ContentType: model.PNG,
		OwnerID:     "user-1",
	}

	// With a single pooled connection any write that holds on to its
	// result would block every following one until the context expires.
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`INSERT INTO images`).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		err := repo.Create(ctx, img)
		cancel()
		require.NoError(t, err)
	}
}

// GET - SUCCESS
func TestPostgresRepo_Get_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := uuid.New().String()

	rows := sqlmock.NewRows([]string{
		"image_id", "image_url", "content_type", "description",
		"owner_id", "created_at", "updated_at",
	}).AddRow(
		id, "https://images.example.com/"+id, model.JPEG, "sunset",
		"user-1", time.Now(), time.Now(),
	)

	mock.ExpectQuery(`SELECT image_id`).
		WithArgs(id).
		WillReturnRows(rows)

	img, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, img.ImageID)
	require.Equal(t, "user-1", img.OwnerID)
}

// GET - NOT FOUND
func TestPostgresRepo_Get_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT image_id`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, model.ErrImageNotFound)
}

// GETBYOWNER - SUCCESS
func TestPostgresRepo_GetByOwner_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{
		"image_id", "image_url", "content_type", "description",
		"owner_id", "created_at", "updated_at",
	}).
		AddRow(uuid.New().String(), "u1", model.PNG, "", "user-1", time.Now(), time.Now()).
		AddRow(uuid.New().String(), "u2", model.GIF, "cat", "user-1", time.Now(), time.Now())

	mock.ExpectQuery(`SELECT image_id`).
		WithArgs("user-1").
		WillReturnRows(rows)

	res, err := repo.GetByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, res, 2)
}

// GETBYOWNER - EMPTY RESULT IS NOT AN ERROR
func TestPostgresRepo_GetByOwner_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{
		"image_id", "image_url", "content_type", "description",
		"owner_id", "created_at", "updated_at",
	})

	mock.ExpectQuery(`SELECT image_id`).
		WithArgs("user-2").
		WillReturnRows(rows)

	res, err := repo.GetByOwner(context.Background(), "user-2")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Empty(t, res)
}

// UPDATE - ONLY MUTABLE FIELDS IN STATEMENT
func TestPostgresRepo_Update_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := uuid.New().String()
	ctype := model.JPEG
	desc := "new description"

	mock.ExpectExec(`UPDATE images`).
		WithArgs(ctype, desc, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), id, &model.ImagePatch{
		ContentType: &ctype,
		Description: &desc,
	})
	require.NoError(t, err)
}

// UPDATE - ZERO ROWS TOUCHED MEANS NOT FOUND
func TestPostgresRepo_Update_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	desc := "orphan"

	mock.ExpectExec(`UPDATE images`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), uuid.New().String(), &model.ImagePatch{
		Description: &desc,
	})
	require.ErrorIs(t, err, model.ErrImageNotFound)
}

// DELETE - SUCCESS
func TestPostgresRepo_Delete_OK(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := uuid.New().String()

	mock.ExpectExec(`DELETE FROM images`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
}

// DELETE - ZERO ROWS TOUCHED MEANS NOT FOUND
func TestPostgresRepo_Delete_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM images`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, model.ErrImageNotFound)
}
