package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Roda só com TEST_DATABASE_URL apontando para um Postgres descartável.
func newTestPostgresRepository(t *testing.T) *PostgresLeadRepository {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL não definido")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(pool))
	_, err = pool.Exec(ctx, `TRUNCATE crm_interactions, crm_leads`)
	require.NoError(t, err)

	return NewPostgresLeadRepository(pool)
}

func TestPostgresRepositoryRoundTrip(t *testing.T) {
	repo := newTestPostgresRepository(t)
	ctx := context.Background()

	phone := "+5511987654321"
	lead := &entity.Lead{
		ID:        uuid.New().String(),
		Name:      "Tiago Campos",
		Channel:   "whatsapp",
		Phone:     &phone,
		Tags:      []string{"barbearia", "recorrente"},
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(ctx, lead))

	got, err := repo.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.Name, got.Name)
	assert.Equal(t, lead.Tags, got.Tags)
	assert.True(t, lead.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.LastContactAt)

	at := lead.CreatedAt.Add(48 * time.Hour)
	require.NoError(t, repo.AppendInteraction(ctx, &entity.Interaction{
		ID: uuid.New().String(), LeadID: lead.ID, Type: "nota", At: at,
	}, false))
	require.NoError(t, repo.AppendInteraction(ctx, &entity.Interaction{
		ID: uuid.New().String(), LeadID: lead.ID, Type: "compra", At: at,
	}, true))

	got, err = repo.FindByID(ctx, lead.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastContactAt)
	assert.True(t, at.Equal(*got.LastContactAt))

	items, err := repo.ListInteractions(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "nota", items[0].Type)
	assert.Equal(t, "compra", items[1].Type)
}

func TestPostgresRepositoryNotFound(t *testing.T) {
	repo := newTestPostgresRepository(t)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	_, err = repo.FindByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	err = repo.AppendInteraction(ctx, &entity.Interaction{
		ID: uuid.New().String(), LeadID: uuid.New().String(), Type: "compra", At: time.Now(),
	}, true)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}
