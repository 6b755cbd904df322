package repository

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const listingColumns = `id, supplier_id, car_name, price_per_day, deposit, inventory,
	       available, fuel_policy, mileage, pay_later_fee_percent, status,
	       cancellation, gps, home_delivery, baby_chair, theft_protection,
	       collision_damage_waiver, full_insurance, additional_driver,
	       created_at, updated_at`

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetLocations(ctx context.Context, listingID uuid.UUID, locationIDs []uuid.UUID) error
	FindLocationIDs(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error)

	// Search returns active, available listings serving the pickup location
	// that still have capacity over [from, to), cheapest first.
	Search(ctx context.Context, locationID *uuid.UUID, from, to time.Time, limit, offset int) ([]*entity.Listing, int64, error)
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		        $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.SupplierID,
		listing.CarName,
		listing.PricePerDay,
		listing.Deposit,
		listing.Inventory,
		listing.Available,
		listing.FuelPolicy,
		listing.Mileage,
		listing.PayLaterFeePercent,
		listing.Status,
		listing.Options.Cancellation.Sentinel(),
		listing.Options.GPS.Sentinel(),
		listing.Options.HomeDelivery.Sentinel(),
		listing.Options.BabyChair.Sentinel(),
		listing.Options.TheftProtection.Sentinel(),
		listing.Options.CollisionDamageWaiver.Sentinel(),
		listing.Options.FullInsurance.Sentinel(),
		listing.Options.AdditionalDriver.Sentinel(),
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("supplier_id", listing.SupplierID.String()),
			zap.String("car_name", listing.CarName),
		)
		return fmt.Errorf("create listing %s: %w", listing.CarName, err)
	}

	return nil
}

func (r *listingRepository) scanListing(row pgx.Row) (*entity.Listing, error) {
	var listing entity.Listing
	var cancellation, gps, homeDelivery, babyChair float64
	var theftProtection, cdw, fullInsurance, additionalDriver float64

	err := row.Scan(
		&listing.ID,
		&listing.SupplierID,
		&listing.CarName,
		&listing.PricePerDay,
		&listing.Deposit,
		&listing.Inventory,
		&listing.Available,
		&listing.FuelPolicy,
		&listing.Mileage,
		&listing.PayLaterFeePercent,
		&listing.Status,
		&cancellation,
		&gps,
		&homeDelivery,
		&babyChair,
		&theftProtection,
		&cdw,
		&fullInsurance,
		&additionalDriver,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.Options = entity.ListingOptions{
		Cancellation:          entity.OptionFromSentinel(cancellation),
		GPS:                   entity.OptionFromSentinel(gps),
		HomeDelivery:          entity.OptionFromSentinel(homeDelivery),
		BabyChair:             entity.OptionFromSentinel(babyChair),
		TheftProtection:       entity.OptionFromSentinel(theftProtection),
		CollisionDamageWaiver: entity.OptionFromSentinel(cdw),
		FullInsurance:         entity.OptionFromSentinel(fullInsurance),
		AdditionalDriver:      entity.OptionFromSentinel(additionalDriver),
	}

	return &listing, nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := r.scanListing(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	locationIDs, err := r.FindLocationIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	listing.LocationIDs = locationIDs

	return listing, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	query := `
		UPDATE listings
		SET car_name = $2, price_per_day = $3, deposit = $4, inventory = $5,
		    available = $6, fuel_policy = $7, mileage = $8,
		    pay_later_fee_percent = $9, status = $10,
		    cancellation = $11, gps = $12, home_delivery = $13, baby_chair = $14,
		    theft_protection = $15, collision_damage_waiver = $16,
		    full_insurance = $17, additional_driver = $18, updated_at = $19
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.CarName,
		listing.PricePerDay,
		listing.Deposit,
		listing.Inventory,
		listing.Available,
		listing.FuelPolicy,
		listing.Mileage,
		listing.PayLaterFeePercent,
		listing.Status,
		listing.Options.Cancellation.Sentinel(),
		listing.Options.GPS.Sentinel(),
		listing.Options.HomeDelivery.Sentinel(),
		listing.Options.BabyChair.Sentinel(),
		listing.Options.TheftProtection.Sentinel(),
		listing.Options.CollisionDamageWaiver.Sentinel(),
		listing.Options.FullInsurance.Sentinel(),
		listing.Options.AdditionalDriver.Sentinel(),
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update listing",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()),
		)
		return fmt.Errorf("update listing %s: %w", listing.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %s not found", listing.ID.String())
	}

	return nil
}

// Delete marks the listing deleted; bookings keep referencing it.
func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE listings SET status = $2, available = FALSE, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, entity.ListingStatusDeleted)
	if err != nil {
		r.log.Error("Failed to delete listing",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("delete listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %s not found", id.String())
	}

	return nil
}

func (r *listingRepository) SetLocations(ctx context.Context, listingID uuid.UUID, locationIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM listing_locations WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("clear listing %s locations: %w", listingID.String(), err)
	}

	for _, locationID := range locationIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO listing_locations (listing_id, location_id) VALUES ($1, $2)`,
			listingID, locationID,
		)
		if err != nil {
			r.log.Error("Failed to set listing location",
				zap.Error(err),
				zap.String("listing_id", listingID.String()),
				zap.String("location_id", locationID.String()),
			)
			return fmt.Errorf("set listing %s location: %w", listingID.String(), err)
		}
	}

	return nil
}

func (r *listingRepository) FindLocationIDs(ctx context.Context, listingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT location_id FROM listing_locations WHERE listing_id = $1`, listingID)
	if err != nil {
		return nil, fmt.Errorf("find listing %s locations: %w", listingID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan location ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *listingRepository) Search(ctx context.Context, locationID *uuid.UUID, from, to time.Time, limit, offset int) ([]*entity.Listing, int64, error) {
	// Same overlap predicate as the checkout recheck, embedded in a
	// correlated subquery so exhausted listings drop out of results.
	capacityCond := `l.inventory > (
			SELECT COUNT(*) FROM bookings b
			WHERE b.listing_id = l.id AND ` + OverlapPredicate("b", 1, 2) + `
		)`

	baseCond := `l.status = 'active' AND l.available = TRUE
		  AND ($3::uuid IS NULL OR EXISTS (
			SELECT 1 FROM listing_locations ll
			WHERE ll.listing_id = l.id AND ll.location_id = $3
		  ))
		  AND ` + capacityCond

	query := `
		SELECT ` + listingColumns + `
		FROM listings l
		WHERE ` + baseCond + `
		ORDER BY l.price_per_day, l.id
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, from, to, locationID, limit, offset)
	if err != nil {
		r.log.Error("Failed to search listings", zap.Error(err))
		return nil, 0, fmt.Errorf("search listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := r.scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, 0, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}
	rows.Close()

	countQuery := `SELECT COUNT(*) FROM listings l WHERE ` + baseCond

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, from, to, locationID).Scan(&total); err != nil {
		r.log.Error("Failed to count search results", zap.Error(err))
		return nil, 0, fmt.Errorf("count search results: %w", err)
	}

	return listings, total, nil
}
