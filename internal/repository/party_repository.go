package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"party-service/internal/models"
)

// ErrPartyNotFound is returned when no row exists for the given code or id.
var ErrPartyNotFound = errors.New("party not found")

// PartyRepository adapts the engine's party model to the parties table.
// Players and game state persist as opaque JSONB blobs; this layer owns the
// (de)serialization in both directions.
type PartyRepository struct {
	db *sql.DB
}

func NewPartyRepository(db *sql.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// UpdateFields names the columns an update touches. Nil fields are left
// untouched, so handlers only write what they changed.
type UpdateFields struct {
	Players *[]models.Player
	Game    *models.GameState
	Code    *string
}

func (r *PartyRepository) Insert(ctx context.Context, code string, players []models.Player, game *models.GameState) error {
	playersJSON, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	query := `INSERT INTO parties (code, players, game) VALUES ($1, $2, $3)`
	_, err = r.db.ExecContext(ctx, query, code, playersJSON, gameJSON)
	return err
}

func (r *PartyRepository) GetByCode(ctx context.Context, code string) (*models.Party, error) {
	query := `
		SELECT id, code, players, game, created_at, updated_at
		FROM parties
		WHERE code = $1
	`
	return r.scanParty(r.db.QueryRowContext(ctx, query, code))
}

func (r *PartyRepository) GetByID(ctx context.Context, id int64) (*models.Party, error) {
	query := `
		SELECT id, code, players, game, created_at, updated_at
		FROM parties
		WHERE id = $1
	`
	return r.scanParty(r.db.QueryRowContext(ctx, query, id))
}

func (r *PartyRepository) UpdateFields(ctx context.Context, code string, fields UpdateFields) error {
	var (
		sets []string
		args []any
	)
	if fields.Players != nil {
		playersJSON, err := json.Marshal(*fields.Players)
		if err != nil {
			return fmt.Errorf("failed to marshal players: %w", err)
		}
		args = append(args, playersJSON)
		sets = append(sets, fmt.Sprintf("players = $%d", len(args)))
	}
	if fields.Game != nil {
		gameJSON, err := json.Marshal(fields.Game)
		if err != nil {
			return fmt.Errorf("failed to marshal game: %w", err)
		}
		args = append(args, gameJSON)
		sets = append(sets, fmt.Sprintf("game = $%d", len(args)))
	}
	if fields.Code != nil {
		args = append(args, *fields.Code)
		sets = append(sets, fmt.Sprintf("code = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	args = append(args, code)
	query := fmt.Sprintf("UPDATE parties SET %s WHERE code = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPartyNotFound
	}
	return nil
}

func (r *PartyRepository) DeleteByCode(ctx context.Context, code string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE code = $1`, code)
	return err
}

// DeleteAll wipes every persisted party. Used on startup: live party state
// is process-local, so rows surviving a restart are stale.
func (r *PartyRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM parties`)
	return err
}

func (r *PartyRepository) ListAll(ctx context.Context) ([]*models.Party, error) {
	query := `
		SELECT id, code, players, game, created_at, updated_at
		FROM parties
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parties []*models.Party
	for rows.Next() {
		party, err := r.scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, rows.Err()
}

func (r *PartyRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM parties WHERE code = $1)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PartyRepository) scanParty(row rowScanner) (*models.Party, error) {
	party := &models.Party{}
	var playersJSON, gameJSON []byte

	err := row.Scan(
		&party.ID,
		&party.Code,
		&playersJSON,
		&gameJSON,
		&party.CreatedAt,
		&party.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPartyNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(playersJSON, &party.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players for %s: %w", party.Code, err)
	}
	if err := json.Unmarshal(gameJSON, &party.Game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game for %s: %w", party.Code, err)
	}
	return party, nil
}
