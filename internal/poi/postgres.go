package poi

import (
	"context"

	"github.com/example/poi-reserve/internal/db"
)

// PostgresRepo serves the catalog from the poi table.
type PostgresRepo struct{ db *db.DB }

func NewPostgresRepo(d *db.DB) *PostgresRepo { return &PostgresRepo{db: d} }

const poiColumns = `id, name, category, area, lat, lng`

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Poi, error) {
	var p Poi
	err := r.db.QueryRow(ctx, `SELECT `+poiColumns+` FROM poi WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Category, &p.Area, &p.Lat, &p.Lng)
	if err != nil {
		if db.IsNotFound(err) {
			return Poi{}, ErrNotFound
		}
		return Poi{}, db.WrapNotFound(err)
	}
	return p, nil
}

func (r *PostgresRepo) ListByCategory(ctx context.Context, c Category) ([]Poi, error) {
	return r.list(ctx, `SELECT `+poiColumns+` FROM poi WHERE category=$1 ORDER BY id`, string(c))
}

func (r *PostgresRepo) ListAll(ctx context.Context) ([]Poi, error) {
	return r.list(ctx, `SELECT `+poiColumns+` FROM poi ORDER BY id`)
}

func (r *PostgresRepo) list(ctx context.Context, sql string, args ...any) ([]Poi, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Poi
	for rows.Next() {
		var p Poi
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Area, &p.Lat, &p.Lng); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert inserts or updates one catalog entry. Used by the poi CLI commands.
func (r *PostgresRepo) Upsert(ctx context.Context, p Poi) error {
	return r.db.Exec(ctx, `
INSERT INTO poi(id, name, category, area, lat, lng)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET name=$2, category=$3, area=$4, lat=$5, lng=$6`,
		p.ID, p.Name, string(p.Category), p.Area, p.Lat, p.Lng)
}
