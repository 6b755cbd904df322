package response

import (
	"time"

	"car-rental-booking/internal/data/entity"
)

// OptionResponse renders one add-on price: kind is "unavailable",
// "included" or "perDay", amount is set only for perDay.
type OptionResponse struct {
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount,omitempty"`
}

type ListingOptionsResponse struct {
	Cancellation          OptionResponse `json:"cancellation"`
	GPS                   OptionResponse `json:"gps"`
	HomeDelivery          OptionResponse `json:"home_delivery"`
	BabyChair             OptionResponse `json:"baby_chair"`
	TheftProtection       OptionResponse `json:"theft_protection"`
	CollisionDamageWaiver OptionResponse `json:"collision_damage_waiver"`
	FullInsurance         OptionResponse `json:"full_insurance"`
	AdditionalDriver      OptionResponse `json:"additional_driver"`
}

type ListingResponse struct {
	ID                 string                 `json:"id"`
	SupplierID         string                 `json:"supplier_id"`
	CarName            string                 `json:"car_name"`
	LocationIDs        []string               `json:"location_ids"`
	PricePerDay        float64                `json:"price_per_day"`
	Deposit            float64                `json:"deposit"`
	Inventory          int                    `json:"inventory"`
	Available          bool                   `json:"available"`
	FuelPolicy         entity.FuelPolicy      `json:"fuel_policy"`
	Mileage            int                    `json:"mileage"`
	PayLaterFeePercent float64                `json:"pay_later_fee_percent"`
	Status             entity.ListingStatus   `json:"status"`
	Options            ListingOptionsResponse `json:"options"`
	CreatedAt          time.Time              `json:"created_at"`
}

func optionToResponse(pricing entity.OptionPricing) OptionResponse {
	switch pricing.Kind {
	case entity.OptionUnavailable:
		return OptionResponse{Kind: "unavailable"}
	case entity.OptionIncluded:
		return OptionResponse{Kind: "included"}
	default:
		return OptionResponse{Kind: "perDay", Amount: pricing.Amount}
	}
}

func ListingToResponse(listing *entity.Listing) *ListingResponse {
	locationIDs := make([]string, 0, len(listing.LocationIDs))
	for _, id := range listing.LocationIDs {
		locationIDs = append(locationIDs, id.String())
	}

	return &ListingResponse{
		ID:                 listing.ID.String(),
		SupplierID:         listing.SupplierID.String(),
		CarName:            listing.CarName,
		LocationIDs:        locationIDs,
		PricePerDay:        listing.PricePerDay,
		Deposit:            listing.Deposit,
		Inventory:          listing.Inventory,
		Available:          listing.Available,
		FuelPolicy:         listing.FuelPolicy,
		Mileage:            listing.Mileage,
		PayLaterFeePercent: listing.PayLaterFeePercent,
		Status:             listing.Status,
		Options: ListingOptionsResponse{
			Cancellation:          optionToResponse(listing.Options.Cancellation),
			GPS:                   optionToResponse(listing.Options.GPS),
			HomeDelivery:          optionToResponse(listing.Options.HomeDelivery),
			BabyChair:             optionToResponse(listing.Options.BabyChair),
			TheftProtection:       optionToResponse(listing.Options.TheftProtection),
			CollisionDamageWaiver: optionToResponse(listing.Options.CollisionDamageWaiver),
			FullInsurance:         optionToResponse(listing.Options.FullInsurance),
			AdditionalDriver:      optionToResponse(listing.Options.AdditionalDriver),
		},
		CreatedAt: listing.CreatedAt,
	}
}
