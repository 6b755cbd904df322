package entity

import (
	"fmt"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "active"
	ListingStatusDeleted ListingStatus = "deleted"
)

type FuelPolicy string

const (
	FuelPolicyLikeForLike FuelPolicy = "likeForLike"
	FuelPolicyFreeTank    FuelPolicy = "freeTank"
)

// UnlimitedMileage marks a listing without a mileage cap.
const UnlimitedMileage = -1

type OptionKind int

const (
	OptionUnavailable OptionKind = iota
	OptionIncluded
	OptionPerDay
)

// OptionPricing is the supplier-configured price of one add-on.
// The database keeps the legacy integer sentinel (-1 unavailable,
// 0 included, positive per-day amount); everything above this layer
// works with the tagged form so an illegal amount cannot slip through.
type OptionPricing struct {
	Kind   OptionKind
	Amount float64
}

func OptionFromSentinel(v float64) OptionPricing {
	switch {
	case v < 0:
		return OptionPricing{Kind: OptionUnavailable}
	case v == 0:
		return OptionPricing{Kind: OptionIncluded}
	default:
		return OptionPricing{Kind: OptionPerDay, Amount: v}
	}
}

func (o OptionPricing) Sentinel() float64 {
	switch o.Kind {
	case OptionUnavailable:
		return -1
	case OptionIncluded:
		return 0
	default:
		return o.Amount
	}
}

func (o OptionPricing) String() string {
	switch o.Kind {
	case OptionUnavailable:
		return "unavailable"
	case OptionIncluded:
		return "included"
	default:
		return fmt.Sprintf("%.2f/day", o.Amount)
	}
}

// ListingOptions holds the per-day pricing of every rental add-on.
type ListingOptions struct {
	Cancellation          OptionPricing
	GPS                   OptionPricing
	HomeDelivery          OptionPricing
	BabyChair             OptionPricing
	TheftProtection       OptionPricing
	CollisionDamageWaiver OptionPricing
	FullInsurance         OptionPricing
	AdditionalDriver      OptionPricing
}

// Listing is a per-supplier offer of a car model: pricing, inventory
// and add-on configuration all belong to the supplier, not the car.
type Listing struct {
	Base
	SupplierID         uuid.UUID     `db:"supplier_id"`
	CarName            string        `db:"car_name"`
	LocationIDs        []uuid.UUID   `db:"-"`
	PricePerDay        float64       `db:"price_per_day"`
	Deposit            float64       `db:"deposit"`
	Inventory          int           `db:"inventory"`
	Available          bool          `db:"available"`
	FuelPolicy         FuelPolicy    `db:"fuel_policy"`
	Mileage            int           `db:"mileage"`
	PayLaterFeePercent float64       `db:"pay_later_fee_percent"`
	Status             ListingStatus `db:"status"`
	Options            ListingOptions
}
