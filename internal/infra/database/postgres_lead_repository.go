package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenteunico/crm-leads/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresLeadRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLeadRepository(pool *pgxpool.Pool) *PostgresLeadRepository {
	return &PostgresLeadRepository{pool: pool}
}

const leadColumns = `id::text, name, channel, phone, email, origin, tags, created_at, last_contact_at`

func (r *PostgresLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO crm_leads (id, name, channel, phone, email, origin, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tags := lead.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.pool.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Channel,
		lead.Phone,
		lead.Email,
		lead.Origin,
		tags,
		lead.CreatedAt,
	)
	return err
}

func (r *PostgresLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM crm_leads ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *PostgresLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	// IDs fora do formato UUID nunca existem na tabela.
	if _, err := uuid.Parse(id); err != nil {
		return nil, entity.ErrLeadNotFound
	}

	row := r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM crm_leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

// AppendInteraction trava a linha do lead para que insert e update sejam
// vistos juntos.
func (r *PostgresLeadRepository) AppendInteraction(ctx context.Context, inter *entity.Interaction, touch bool) error {
	if _, err := uuid.Parse(inter.LeadID); err != nil {
		return entity.ErrLeadNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists string
	err = tx.QueryRow(ctx, `SELECT id::text FROM crm_leads WHERE id = $1 FOR UPDATE`, inter.LeadID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return fmt.Errorf("lock lead: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO crm_interactions (id, lead_id, type, note, at)
		VALUES ($1, $2, $3, $4, $5)
	`, inter.ID, inter.LeadID, inter.Type, inter.Note, inter.At)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}

	if touch {
		_, err = tx.Exec(ctx, `UPDATE crm_leads SET last_contact_at = $2 WHERE id = $1`, inter.LeadID, inter.At)
		if err != nil {
			return fmt.Errorf("touch lead: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresLeadRepository) ListInteractions(ctx context.Context, leadID string) ([]*entity.Interaction, error) {
	if _, err := uuid.Parse(leadID); err != nil {
		return []*entity.Interaction{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id::text, lead_id::text, type, note, at
		FROM crm_interactions
		WHERE lead_id = $1
		ORDER BY seq ASC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Interaction, 0)
	for rows.Next() {
		var inter entity.Interaction
		if err := rows.Scan(&inter.ID, &inter.LeadID, &inter.Type, &inter.Note, &inter.At); err != nil {
			return nil, err
		}
		inter.At = inter.At.UTC()
		items = append(items, &inter)
	}
	return items, rows.Err()
}

func scanLead(row pgx.Row) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Channel,
		&lead.Phone,
		&lead.Email,
		&lead.Origin,
		&lead.Tags,
		&lead.CreatedAt,
		&lead.LastContactAt,
	)
	if err != nil {
		return nil, err
	}

	lead.CreatedAt = lead.CreatedAt.UTC()
	if lead.LastContactAt != nil {
		t := lead.LastContactAt.UTC()
		lead.LastContactAt = &t
	}
	return &lead, nil
}
