package repository

import (
	"context"
	"encoding/json"
	"time"

	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const restaurantColumns = `
	id, name, subdomain, slug, external_ref,
	reservation_settings, manager_settings, created_at`

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

// FindByRef loads the tenant addressed by a resolved request handle.
func (r *RestaurantRepository) FindByRef(ctx context.Context, ref tenant.Ref) (*tenant.Restaurant, error) {
	var column string
	switch ref.Kind {
	case tenant.RefExternal:
		column = "external_ref"
	case tenant.RefSlug:
		column = "slug"
	case tenant.RefSubdomain:
		column = "subdomain"
	default:
		return nil, infra.WrapRepoErr("unknown tenant ref kind", tenant.ErrUnresolvable, infra.KindNotFound)
	}

	row := r.pool.QueryRow(ctx, `
		SELECT`+restaurantColumns+`
		FROM restaurants
		WHERE `+column+` = $1`,
		ref.Value,
	)
	rest, err := scanRestaurant(row)
	if err != nil {
		return nil, wrapPg("failed to resolve restaurant", err)
	}
	return rest, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Restaurant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+restaurantColumns+`
		FROM restaurants
		WHERE id = $1`,
		id,
	)
	rest, err := scanRestaurant(row)
	if err != nil {
		return nil, wrapPg("failed to find restaurant", err)
	}
	return rest, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *tenant.Restaurant) error {
	resSettings, err := json.Marshal(rest.Reservation)
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation settings")
	}
	mgrSettings, err := json.Marshal(rest.Manager)
	if err != nil {
		return errs.Wrap(err, "failed to encode manager settings")
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO restaurants (
			id, name, subdomain, slug, external_ref,
			reservation_settings, manager_settings
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rest.ID, rest.Name, rest.Subdomain, rest.Slug, rest.ExternalRef,
		resSettings, mgrSettings,
	)
	if err != nil {
		return wrapPg("failed to create restaurant", err)
	}
	return nil
}

// UpdateSettings replaces the per-tenant reservation settings document.
func (r *RestaurantRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings tenant.ReservationSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation settings")
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE restaurants
		SET reservation_settings = $2
		WHERE id = $1`,
		id, raw,
	)
	if err != nil {
		return wrapPg("failed to update restaurant settings", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RestaurantRepository) List(ctx context.Context) ([]*tenant.Restaurant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+restaurantColumns+`
		FROM restaurants
		ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, wrapPg("failed to list restaurants", err)
	}
	defer rows.Close()

	var result []*tenant.Restaurant
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, wrapPg("failed to scan restaurant", err)
		}
		result = append(result, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPg("failed to read restaurants", err)
	}
	return result, nil
}

func scanRestaurant(row pgx.Row) (*tenant.Restaurant, error) {
	var (
		rest                     tenant.Restaurant
		resSettings, mgrSettings []byte
		createdAt                time.Time
	)
	err := row.Scan(
		&rest.ID, &rest.Name, &rest.Subdomain, &rest.Slug, &rest.ExternalRef,
		&resSettings, &mgrSettings, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rest.Reservation = tenant.DefaultReservationSettings()
	if len(resSettings) > 0 {
		if err := json.Unmarshal(resSettings, &rest.Reservation); err != nil {
			return nil, errs.Wrap(err, "failed to decode reservation settings")
		}
	}
	if len(mgrSettings) > 0 {
		if err := json.Unmarshal(mgrSettings, &rest.Manager); err != nil {
			return nil, errs.Wrap(err, "failed to decode manager settings")
		}
	}
	rest.CreatedAt = createdAt
	return &rest, nil
}
