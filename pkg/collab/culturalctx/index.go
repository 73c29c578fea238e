package culturalctx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
)

// Profile is a commodity or dialect cultural profile embedded for
// similarity search — used to find the closest-matching negotiation style
// and honorific set for a commodity/dialect pairing absent from the
// built-in regionalNorms table (e.g. a local dialect name or a
// commodity-specific courtesy phrase learned from transcripts).
type Profile struct {
	ID        string
	Label     string
	Language  string
	Style     NegotiationStyle
	Embedding []float32
}

// ProfileMatch is a Profile returned from a similarity search, paired with
// its cosine distance from the query embedding (lower is more similar).
type ProfileMatch struct {
	Profile  Profile
	Distance float32
}

const ddlCulturalProfiles = `
CREATE TABLE IF NOT EXISTS cultural_profiles (
    id        TEXT PRIMARY KEY,
    label     TEXT NOT NULL,
    language  TEXT NOT NULL,
    style     INT  NOT NULL,
    embedding VECTOR(%d) NOT NULL
);
`

// Migrate creates the cultural_profiles table if it does not already
// exist. embeddingDimensions must match the dimensionality of vectors
// passed to IndexProfile and Nearest.
func Migrate(ctx context.Context, pool *pgxpool.Pool, embeddingDimensions int) error {
	q := fmt.Sprintf(ddlCulturalProfiles, embeddingDimensions)
	if _, err := pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("culturalctx: migrate: %w", err)
	}
	return nil
}

// ProfileIndex is a pgvector-backed nearest-neighbour index over
// commodity/dialect cultural [Profile]s, used to extend the built-in
// regional norms table with profiles learned or curated outside it.
//
// All methods are safe for concurrent use.
type ProfileIndex struct {
	pool *pgxpool.Pool
}

// NewProfileIndex wraps an existing pool. Callers must run [Migrate]
// before use.
func NewProfileIndex(pool *pgxpool.Pool) *ProfileIndex {
	return &ProfileIndex{pool: pool}
}

// IndexProfile upserts p into the index.
func (i *ProfileIndex) IndexProfile(ctx context.Context, p Profile) error {
	const q = `
		INSERT INTO cultural_profiles (id, label, language, style, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			label     = EXCLUDED.label,
			language  = EXCLUDED.language,
			style     = EXCLUDED.style,
			embedding = EXCLUDED.embedding
	`
	_, err := i.pool.Exec(ctx, q, p.ID, p.Label, p.Language, int(p.Style), pgvector.NewVector(p.Embedding))
	if err != nil {
		return fmt.Errorf("culturalctx: index profile: %w", err)
	}
	return nil
}

// Nearest returns the topK profiles closest to embedding by cosine
// distance, ordered most-similar first, optionally restricted to
// language.
func (i *ProfileIndex) Nearest(ctx context.Context, embedding []float32, topK int, language string) ([]ProfileMatch, error) {
	queryVec := pgvector.NewVector(embedding)

	args := []any{queryVec}
	where := ""
	if language != "" {
		args = append(args, language)
		where = fmt.Sprintf("WHERE language = $%d", len(args))
	}
	args = append(args, topK)
	limitArg := fmt.Sprintf("$%d", len(args))

	q := fmt.Sprintf(`
		SELECT id, label, language, style, embedding, embedding <=> $1 AS distance
		FROM   cultural_profiles
		%s
		ORDER  BY distance
		LIMIT  %s`, where, limitArg)

	rows, err := i.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("culturalctx: nearest: %w", err)
	}

	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ProfileMatch, error) {
		var (
			m     ProfileMatch
			style int
			vec   pgvector.Vector
		)
		if err := row.Scan(&m.Profile.ID, &m.Profile.Label, &m.Profile.Language, &style, &vec, &m.Distance); err != nil {
			return ProfileMatch{}, err
		}
		m.Profile.Style = NegotiationStyle(style)
		m.Profile.Embedding = vec.Slice()
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("culturalctx: scan rows: %w", err)
	}
	if matches == nil {
		matches = []ProfileMatch{}
	}
	return matches, nil
}
