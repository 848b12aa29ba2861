package repo_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"process-maps-backend/internal/config"
	"process-maps-backend/internal/models"
	"process-maps-backend/internal/repo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(config.DatabaseConfig{
		Driver:   "sqlite",
		URL:      filepath.Join(t.TempDir(), "boards.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { _ = config.CloseDB(db) })
	return db
}

func seedBoard(t *testing.T, db *gorm.DB, email, name string) (*models.User, *models.Board) {
	t.Helper()
	ctx := context.Background()
	user, err := repo.NewUserRepository(db).UpsertUser(ctx, &models.User{Email: email, Name: "Test"})
	require.NoError(t, err)

	board := &models.Board{Name: name, UserID: user.ID}
	require.NoError(t, repo.NewBoardRepository(db).CreateBoard(ctx, board))
	return user, board
}

func TestUpsertUser(t *testing.T) {
	db := newTestDB(t)
	users := repo.NewUserRepository(db)
	ctx := context.Background()

	first, err := users.UpsertUser(ctx, &models.User{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, err := users.UpsertUser(ctx, &models.User{Email: "ada@example.com", Name: "Ada L.", AvatarURL: "http://a/x.png"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := users.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", stored.Name)
	assert.Equal(t, "http://a/x.png", stored.AvatarURL)

	_, err = users.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestGetBoardsByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boards := repo.NewBoardRepository(db)
	content := repo.NewBoardContentRepository(db)

	user, older := seedBoard(t, db, "ada@example.com", "older")
	time.Sleep(10 * time.Millisecond)
	newer := &models.Board{Name: "newer", UserID: user.ID}
	require.NoError(t, boards.CreateBoard(ctx, newer))
	seedBoard(t, db, "bob@example.com", "not mine")

	list, err := boards.GetBoardsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)

	// saving bumps updated_at and moves the board to the front
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, content.ReplaceBoardContent(ctx, older.ID, nil, nil))

	list, err = boards.GetBoardsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "older", list[0].Name)

	empty, err := boards.GetBoardsByUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestReplaceBoardContent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	content := repo.NewBoardContentRepository(db)
	_, board := seedBoard(t, db, "ada@example.com", "Flow A")

	shapes := []models.Shape{
		{ID: "n2", BoardID: board.ID, Type: models.ShapeSticky, Text: "second", Width: 150, Height: 100, Seq: 0},
		{ID: "n1", BoardID: board.ID, Type: models.ShapeRectangle, Text: "first", Width: 150, Height: 50, Seq: 1},
	}
	connections := []models.Connection{{
		ID:          "e1",
		BoardID:     board.ID,
		FromShapeID: "n2",
		ToShapeID:   "n1",
		Metadata:    datatypes.NewJSONType(models.EdgeMetadata{Type: "custom", Label: "next"}),
	}}
	require.NoError(t, content.ReplaceBoardContent(ctx, board.ID, shapes, connections))

	loaded, err := content.GetBoardContent(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Shapes, 2)
	assert.Equal(t, "n2", loaded.Shapes[0].ID)
	assert.Equal(t, "n1", loaded.Shapes[1].ID)
	require.Len(t, loaded.Connections, 1)
	assert.Equal(t, "next", loaded.Connections[0].Metadata.Data().Label)
	for _, s := range loaded.Shapes {
		assert.Equal(t, board.ID, s.BoardID)
	}

	t.Run("Replaces Everything", func(t *testing.T) {
		next := []models.Shape{{ID: "n3", BoardID: board.ID, Type: models.ShapeCircle}}
		require.NoError(t, content.ReplaceBoardContent(ctx, board.ID, next, nil))

		loaded, err := content.GetBoardContent(ctx, board.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Shapes, 1)
		assert.Equal(t, "n3", loaded.Shapes[0].ID)
		assert.Empty(t, loaded.Connections)
	})

	t.Run("Rolls Back On Failed Insert", func(t *testing.T) {
		dup := []models.Shape{
			{ID: "x", BoardID: board.ID, Type: models.ShapeRectangle},
			{ID: "x", BoardID: board.ID, Type: models.ShapeRectangle},
		}
		err := content.ReplaceBoardContent(ctx, board.ID, dup, nil)
		require.Error(t, err)

		loaded, err := content.GetBoardContent(ctx, board.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Shapes, 1)
		assert.Equal(t, "n3", loaded.Shapes[0].ID)
	})

	t.Run("Same Node IDs On Another Board", func(t *testing.T) {
		_, other := seedBoard(t, db, "bob@example.com", "Flow B")
		same := []models.Shape{{ID: "n3", BoardID: other.ID, Type: models.ShapeRectangle}}
		require.NoError(t, content.ReplaceBoardContent(ctx, other.ID, same, nil))

		loaded, err := content.GetBoardContent(ctx, board.ID)
		require.NoError(t, err)
		assert.Len(t, loaded.Shapes, 1)
	})

	t.Run("Unknown Board", func(t *testing.T) {
		err := content.ReplaceBoardContent(ctx, uuid.New(), nil, nil)
		assert.ErrorIs(t, err, repo.ErrBoardNotFound)
	})
}

func TestDeleteBoard(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	content := repo.NewBoardContentRepository(db)
	_, board := seedBoard(t, db, "ada@example.com", "Flow A")

	shapes := []models.Shape{{ID: "n1", BoardID: board.ID, Type: models.ShapeRectangle}}
	require.NoError(t, content.ReplaceBoardContent(ctx, board.ID, shapes, nil))

	require.NoError(t, content.DeleteBoard(ctx, board.ID))

	_, err := content.GetBoardContent(ctx, board.ID)
	assert.ErrorIs(t, err, repo.ErrBoardNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.Shape{}).Where("board_id = ?", board.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	assert.ErrorIs(t, content.DeleteBoard(ctx, board.ID), repo.ErrBoardNotFound)
}
