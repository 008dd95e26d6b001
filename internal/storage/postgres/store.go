package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0x0042/uniswap-v3-periphery/internal/model"
)

// Store provides Postgres persistence for positions and rendered
// descriptor documents.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadPositions returns up to limit positions for a chain, ordered by
// token id, starting strictly after the given cursor.
func (s *Store) LoadPositions(ctx context.Context, chainID uint64, afterTokenID string, limit int) ([]model.PositionRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if afterTokenID == "" {
		afterTokenID = "0"
	}

	rows, err := s.pool.Query(ctx, `
		SELECT chain_id, token_id, pool_address, token0, token1,
		       token0_symbol, token1_symbol, fee, tick_spacing,
		       tick_lower, tick_upper, liquidity
		FROM positions
		WHERE chain_id = $1 AND token_id::numeric > $2::numeric
		ORDER BY token_id::numeric
		LIMIT $3
	`, int64(chainID), afterTokenID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]model.PositionRecord, 0, limit)
	for rows.Next() {
		var p model.PositionRecord
		var chain int64
		if err := rows.Scan(
			&chain, &p.TokenID, &p.PoolAddress, &p.Token0, &p.Token1,
			&p.Token0Symbol, &p.Token1Symbol, &p.Fee, &p.TickSpacing,
			&p.TickLower, &p.TickUpper, &p.Liquidity,
		); err != nil {
			return nil, err
		}
		p.ChainID = uint64(chain)
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// UpsertDocuments inserts or updates rendered documents.
func (s *Store) UpsertDocuments(ctx context.Context, docs []model.RenderedDocument) error {
	if len(docs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, doc := range docs {
		batch.Queue(`
			INSERT INTO rendered_documents (
				chain_id, token_id, name, token_uri, rendered_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (chain_id, token_id)
			DO UPDATE SET
				name = EXCLUDED.name,
				token_uri = EXCLUDED.token_uri,
				rendered_at = EXCLUDED.rendered_at,
				updated_at = now()
		`,
			int64(doc.ChainID),
			doc.TokenID,
			doc.Name,
			doc.TokenURI,
			doc.RenderedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range docs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
