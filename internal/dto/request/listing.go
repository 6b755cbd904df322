package request

// Add-on prices arrive in the legacy sentinel form: -1 not offered,
// 0 included, positive per-day amount. They are converted to the tagged
// form at the service boundary.
type ListingOptionsRequest struct {
	Cancellation          float64 `json:"cancellation" validate:"gte=-1"`
	GPS                   float64 `json:"gps" validate:"gte=-1"`
	HomeDelivery          float64 `json:"home_delivery" validate:"gte=-1"`
	BabyChair             float64 `json:"baby_chair" validate:"gte=-1"`
	TheftProtection       float64 `json:"theft_protection" validate:"gte=-1"`
	CollisionDamageWaiver float64 `json:"collision_damage_waiver" validate:"gte=-1"`
	FullInsurance         float64 `json:"full_insurance" validate:"gte=-1"`
	AdditionalDriver      float64 `json:"additional_driver" validate:"gte=-1"`
}

type CreateListingRequest struct {
	CarName            string                `json:"car_name" validate:"required,min=2,max=100"`
	LocationIDs        []string              `json:"location_ids" validate:"required,min=1,dive,uuid4"`
	PricePerDay        float64               `json:"price_per_day" validate:"required,gt=0"`
	Deposit            float64               `json:"deposit" validate:"gte=0"`
	Inventory          int                   `json:"inventory" validate:"gte=0"`
	Available          bool                  `json:"available"`
	FuelPolicy         string                `json:"fuel_policy" validate:"required,oneof=likeForLike freeTank"`
	Mileage            int                   `json:"mileage" validate:"gte=-1"`
	PayLaterFeePercent float64               `json:"pay_later_fee_percent" validate:"gte=0,lte=100"`
	Options            ListingOptionsRequest `json:"options"`
}

type UpdateListingRequest struct {
	CarName            string                `json:"car_name" validate:"required,min=2,max=100"`
	LocationIDs        []string              `json:"location_ids" validate:"required,min=1,dive,uuid4"`
	PricePerDay        float64               `json:"price_per_day" validate:"required,gt=0"`
	Deposit            float64               `json:"deposit" validate:"gte=0"`
	Inventory          int                   `json:"inventory" validate:"gte=0"`
	Available          bool                  `json:"available"`
	FuelPolicy         string                `json:"fuel_policy" validate:"required,oneof=likeForLike freeTank"`
	Mileage            int                   `json:"mileage" validate:"gte=-1"`
	PayLaterFeePercent float64               `json:"pay_later_fee_percent" validate:"gte=0,lte=100"`
	Options            ListingOptionsRequest `json:"options"`
}

type SearchListingsRequest struct {
	PickupLocationID *string `json:"pickup_location_id,omitempty" validate:"omitempty,uuid4"`
	From             string  `json:"from" validate:"required"`
	To               string  `json:"to" validate:"required"`
	PaginatedRequest
}
