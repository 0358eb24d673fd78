package repository

import (
	"context"
	"fmt"

	"cinema-seat-ledger/internal/data/entity"
	"cinema-seat-ledger/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ScreenRepository interface {
	Create(ctx context.Context, screen *entity.Screen) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error)
	FindByTheatre(ctx context.Context, theatreID uuid.UUID) ([]*entity.Screen, error)
}

type screenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreenRepository(db database.PgxIface, log *zap.Logger) ScreenRepository {
	return &screenRepository{
		db:  db,
		log: log.With(zap.String("repository", "screen")),
	}
}

const screenColumns = `
	id, theatre_id, name, type, rows, seats_per_row,
	premium_rows, standard_rows, economy_rows, created_at, updated_at`

func (r *screenRepository) Create(ctx context.Context, screen *entity.Screen) error {
	query := `
		INSERT INTO screens (id, theatre_id, name, type, rows, seats_per_row,
		                     premium_rows, standard_rows, economy_rows, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		screen.ID,
		screen.TheatreID,
		screen.Name,
		screen.Type,
		screen.Rows,
		screen.SeatsPerRow,
		screen.PremiumRows,
		screen.StandardRows,
		screen.EconomyRows,
		screen.CreatedAt,
		screen.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create screen",
			zap.Error(err),
			zap.String("theatre_id", screen.TheatreID.String()),
			zap.String("name", screen.Name),
		)
		return fmt.Errorf("create screen %s: %w", screen.Name, classify(err))
	}

	return nil
}

func (r *screenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screen, error) {
	query := `SELECT ` + screenColumns + ` FROM screens WHERE id = $1`

	screen, err := scanScreen(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screen by ID",
			zap.Error(err),
			zap.String("screen_id", id.String()),
		)
		return nil, fmt.Errorf("find screen %s: %w", id, classify(err))
	}

	return screen, nil
}

func (r *screenRepository) FindByTheatre(ctx context.Context, theatreID uuid.UUID) ([]*entity.Screen, error) {
	query := `SELECT ` + screenColumns + ` FROM screens WHERE theatre_id = $1 ORDER BY name`

	rows, err := r.db.Query(ctx, query, theatreID)
	if err != nil {
		r.log.Error("Failed to list theatre screens",
			zap.Error(err),
			zap.String("theatre_id", theatreID.String()),
		)
		return nil, fmt.Errorf("list screens of theatre %s: %w", theatreID, classify(err))
	}
	defer rows.Close()

	screens := []*entity.Screen{}
	for rows.Next() {
		screen, err := scanScreen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan screen: %w", err)
		}
		screens = append(screens, screen)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screens: %w", classify(err))
	}

	return screens, nil
}

func scanScreen(row pgx.Row) (*entity.Screen, error) {
	var s entity.Screen
	err := row.Scan(
		&s.ID,
		&s.TheatreID,
		&s.Name,
		&s.Type,
		&s.Rows,
		&s.SeatsPerRow,
		&s.PremiumRows,
		&s.StandardRows,
		&s.EconomyRows,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
