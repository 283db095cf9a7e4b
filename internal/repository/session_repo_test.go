package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"labsite/internal/model"
)

// The driver connects lazily, so paths that fail before touching the
// server are unit-testable without a running MongoDB.
func newOfflineRepo(t *testing.T) SessionRepo {
	t.Helper()
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return NewSessionRepo(client.Database("labsite_test"))
}

func TestOperationsRejectMalformedIDs(t *testing.T) {
	repo := newOfflineRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = repo.Update(ctx, "1234", &model.SessionInput{})
	assert.ErrorIs(t, err, ErrInvalidID)

	err = repo.Delete(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestCreateValidatesBeforePersisting(t *testing.T) {
	repo := newOfflineRepo(t)

	_, err := repo.Create(context.Background(), &model.SessionInput{
		Date:         "2024-09-16",
		PaperTitle:   "T",
		PaperLink:    "L",
		Presenter:    []model.Presenter{{Name: "A", Link: "B"}},
		AcademicYear: "2024-2025",
	})

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Details, "Date must be in DD-MM-YY format")
}

func TestUpdateValidatesAfterIDCheck(t *testing.T) {
	repo := newOfflineRepo(t)

	_, err := repo.Update(context.Background(), "66e7a1b2c3d4e5f6a7b8c9d0", &model.SessionInput{
		Date: "bad",
	})

	var validationErr *model.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
