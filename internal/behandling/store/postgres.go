package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
	"kabal/pkg/platform/sentinel"
	txcontext "kabal/pkg/platform/tx"
)

const pgUniqueViolation = "23505"

// Postgres persists cases as a JSONB row plus an insert-only history table.
// Inside RunInTx it writes through the transaction carried in ctx.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) exec(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFrom(ctx, p.db)
}

func (p *Postgres) FindByID(ctx context.Context, caseID id.CaseID) (*models.Case, error) {
	var payload []byte
	err := p.exec(ctx).QueryRowContext(ctx,
		`SELECT payload FROM behandling WHERE id = $1`, uuid.UUID(caseID),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find behandling: %w", err)
	}
	c, err := decodeCase(payload)
	if err != nil {
		return nil, err
	}
	if err := p.loadHistory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Postgres) FindBySource(ctx context.Context, sourceSystem, sourceReference string, caseType models.Type) ([]*models.Case, error) {
	return p.findMany(ctx, `
		SELECT payload FROM behandling
		WHERE source_system = $1 AND source_reference = $2 AND type = $3 AND NOT voided
		ORDER BY created_at
	`, sourceSystem, sourceReference, string(caseType))
}

func (p *Postgres) FindBySubject(ctx context.Context, subject models.PartyID) ([]*models.Case, error) {
	return p.findMany(ctx, `
		SELECT payload FROM behandling
		WHERE subject_kind = $1 AND subject_value = $2 AND NOT voided
		ORDER BY created_at
	`, string(subject.Kind), subject.Value)
}

func (p *Postgres) findMany(ctx context.Context, query string, args ...any) ([]*models.Case, error) {
	rows, err := p.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query behandlinger: %w", err)
	}
	defer rows.Close()

	var out []*models.Case
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan behandling: %w", err)
		}
		c, err := decodeCase(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate behandlinger: %w", err)
	}
	for _, c := range out {
		if err := p.loadHistory(ctx, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (p *Postgres) Save(ctx context.Context, c *models.Case) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal behandling: %w", err)
	}

	_, err = p.exec(ctx).ExecContext(ctx, `
		INSERT INTO behandling (
			id, type, category, source_system, source_reference,
			subject_kind, subject_value, voided, completed, payload,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			voided = EXCLUDED.voided,
			completed = EXCLUDED.completed,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`,
		uuid.UUID(c.ID),
		string(c.Type),
		c.Category,
		c.SourceSystem,
		c.SourceReference,
		string(c.Parties.Subject.Kind),
		c.Parties.Subject.Value,
		c.IsVoided(),
		c.IsCompleted(),
		payload,
		c.CreatedAt,
		time.Now(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("save behandling: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("save behandling: %w", err)
	}
	return p.appendHistory(ctx, c)
}

type historyRow struct {
	dimension models.Dimension
	at        time.Time
	entry     any
}

func historyRows(c *models.Case) map[models.Dimension][]historyRow {
	rows := make(map[models.Dimension][]historyRow)
	add := func(d models.Dimension, at time.Time, entry any) {
		rows[d] = append(rows[d], historyRow{dimension: d, at: at, entry: entry})
	}
	for _, s := range c.AssignmentHistory {
		add(models.DimensionAssignment, s.Timestamp, s)
	}
	for _, s := range c.CoSignerHistory {
		add(models.DimensionCoSigner, s.Timestamp, s)
	}
	for _, s := range c.LegalAdvisorHistory {
		add(models.DimensionLegalAdvisor, s.Timestamp, s)
	}
	for _, s := range c.HoldHistory {
		add(models.DimensionHold, s.Timestamp, s)
	}
	for _, s := range c.ClaimantHistory {
		add(models.DimensionClaimant, s.Timestamp, s)
	}
	for _, s := range c.RepresentativeHistory {
		add(models.DimensionRepresentative, s.Timestamp, s)
	}
	return rows
}

// appendHistory inserts entries beyond the stored sequence of each dimension.
// Stored entries are never updated.
func (p *Postgres) appendHistory(ctx context.Context, c *models.Case) error {
	stored, err := p.historyLengths(ctx, c.ID)
	if err != nil {
		return err
	}
	for dimension, rows := range historyRows(c) {
		for seq := stored[dimension]; seq < len(rows); seq++ {
			payload, err := json.Marshal(rows[seq].entry)
			if err != nil {
				return fmt.Errorf("marshal %s history: %w", dimension, err)
			}
			_, err = p.exec(ctx).ExecContext(ctx, `
				INSERT INTO behandling_history (behandling_id, dimension, seq, recorded_at, payload)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (behandling_id, dimension, seq) DO NOTHING
			`, uuid.UUID(c.ID), string(dimension), seq, rows[seq].at, payload)
			if err != nil {
				return fmt.Errorf("append %s history: %w", dimension, err)
			}
		}
	}
	return nil
}

func (p *Postgres) historyLengths(ctx context.Context, caseID id.CaseID) (map[models.Dimension]int, error) {
	rows, err := p.exec(ctx).QueryContext(ctx, `
		SELECT dimension, COUNT(*) FROM behandling_history
		WHERE behandling_id = $1
		GROUP BY dimension
	`, uuid.UUID(caseID))
	if err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}
	defer rows.Close()

	out := make(map[models.Dimension]int)
	for rows.Next() {
		var dimension string
		var n int
		if err := rows.Scan(&dimension, &n); err != nil {
			return nil, fmt.Errorf("scan history count: %w", err)
		}
		out[models.Dimension(dimension)] = n
	}
	return out, rows.Err()
}

func (p *Postgres) loadHistory(ctx context.Context, c *models.Case) error {
	rows, err := p.exec(ctx).QueryContext(ctx, `
		SELECT dimension, payload FROM behandling_history
		WHERE behandling_id = $1
		ORDER BY dimension, seq
	`, uuid.UUID(c.ID))
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dimension string
		var payload []byte
		if err := rows.Scan(&dimension, &payload); err != nil {
			return fmt.Errorf("scan history: %w", err)
		}
		if err := appendDecoded(c, models.Dimension(dimension), payload); err != nil {
			return err
		}
	}
	return rows.Err()
}

func appendDecoded(c *models.Case, dimension models.Dimension, payload []byte) error {
	var err error
	switch dimension {
	case models.DimensionAssignment:
		c.AssignmentHistory, err = decodeAppend(c.AssignmentHistory, payload)
	case models.DimensionCoSigner:
		c.CoSignerHistory, err = decodeAppend(c.CoSignerHistory, payload)
	case models.DimensionLegalAdvisor:
		c.LegalAdvisorHistory, err = decodeAppend(c.LegalAdvisorHistory, payload)
	case models.DimensionHold:
		c.HoldHistory, err = decodeAppend(c.HoldHistory, payload)
	case models.DimensionClaimant:
		c.ClaimantHistory, err = decodeAppend(c.ClaimantHistory, payload)
	case models.DimensionRepresentative:
		c.RepresentativeHistory, err = decodeAppend(c.RepresentativeHistory, payload)
	default:
		return fmt.Errorf("unknown history dimension %q", dimension)
	}
	if err != nil {
		return fmt.Errorf("decode %s history: %w", dimension, err)
	}
	return nil
}

func decodeAppend[S models.Snapshot](history []S, payload []byte) ([]S, error) {
	var s S
	if err := json.Unmarshal(payload, &s); err != nil {
		return history, err
	}
	return append(history, s), nil
}

func decodeCase(payload []byte) (*models.Case, error) {
	var c models.Case
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("decode behandling: %w", err)
	}
	return &c, nil
}
