package database

import (
	"context"
	"errors"
	"log"
	"strings"

	"passport_parser/internal/config/connections/postgres"
	"passport_parser/internal/ports"
)

// NameOverridesRepo reads curated Latin spellings of native names.
//
//	CREATE TABLE name_overrides (
//	    country text NOT NULL,
//	    native  text NOT NULL,
//	    latin   text NOT NULL,
//	    PRIMARY KEY (country, native)
//	);
//
// country holds the template name ("myanmar", "turkmenistan").
type NameOverridesRepo struct {
	pg *postgres.Postgres
}

func NewNameOverridesRepo(pg *postgres.Postgres) *NameOverridesRepo {
	return &NameOverridesRepo{pg: pg}
}

func (r *NameOverridesRepo) enabled() bool {
	return r != nil && r.pg != nil && r.pg.Pool != nil
}

// LoadNames returns every override for country. Without a connection the
// map is empty.
func (r *NameOverridesRepo) LoadNames(ctx context.Context, country string) (ports.NameMap, error) {
	out := ports.NameMap{}
	if !r.enabled() {
		return out, nil
	}
	if strings.TrimSpace(country) == "" {
		return out, errors.New("empty country")
	}

	rows, err := r.pg.Pool.Query(ctx, `SELECT native, latin FROM name_overrides WHERE country = $1`, country)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var native, latin string
		if err := rows.Scan(&native, &latin); err != nil {
			log.Printf("[NAMES][WARN] scan: %v", err)
			continue
		}
		native, latin = strings.TrimSpace(native), strings.TrimSpace(latin)
		if native == "" || latin == "" {
			continue
		}
		out[ports.NameKey(native)] = latin
	}
	if err := rows.Err(); err != nil {
		return out, err
	}

	log.Printf("[NAMES] country=%s overrides=%d", country, len(out))
	return out, nil
}

// Upsert stores or replaces one override.
func (r *NameOverridesRepo) Upsert(ctx context.Context, country, native, latin string) error {
	if !r.enabled() {
		return errors.New("postgres not available")
	}
	native, latin = strings.TrimSpace(native), strings.TrimSpace(latin)
	if native == "" || latin == "" {
		return errors.New("native and latin spellings are required")
	}

	_, err := r.pg.Pool.Exec(ctx, `
		INSERT INTO name_overrides (country, native, latin)
		VALUES ($1, $2, $3)
		ON CONFLICT (country, native) DO UPDATE SET latin = EXCLUDED.latin
	`, country, native, latin)
	return err
}
