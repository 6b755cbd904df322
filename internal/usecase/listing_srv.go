package usecase

import (
	"context"
	"fmt"
	"time"

	"car-rental-booking/internal/data/entity"
	"car-rental-booking/internal/data/repository"
	"car-rental-booking/internal/dto/request"
	"car-rental-booking/internal/dto/response"
	"car-rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ListingService interface {
	// Search returns listings with remaining capacity over the requested
	// dates, optionally filtered by pickup location, cheapest first.
	Search(ctx context.Context, req *request.SearchListingsRequest) (*response.PaginatedResponse[*response.ListingResponse], error)

	GetByID(ctx context.Context, id uuid.UUID) (*response.ListingResponse, error)
	Create(ctx context.Context, supplierID uuid.UUID, req *request.CreateListingRequest) (*response.ListingResponse, error)
	Update(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID, req *request.UpdateListingRequest) (*response.ListingResponse, error)
	Delete(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID) error
}

type listingService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewListingService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ListingService {
	return &listingService{
		repo:   repo,
		config: config,
		log:    log,
	}
}

func (s *listingService) Search(ctx context.Context, req *request.SearchListingsRequest) (*response.PaginatedResponse[*response.ListingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Search validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	from, to, err := parseInterval(req.From, req.To)
	if err != nil {
		return nil, err
	}

	var locationID *uuid.UUID
	if req.PickupLocationID != nil {
		id, err := uuid.Parse(*req.PickupLocationID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pickup location ID", ErrInvalidInterval)
		}
		locationID = &id
	}

	listings, total, err := s.repo.Listing.Search(ctx, locationID, from, to, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]*response.ListingResponse, 0, len(listings))
	for _, listing := range listings {
		items = append(items, response.ListingToResponse(listing))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *listingService) GetByID(ctx context.Context, id uuid.UUID) (*response.ListingResponse, error) {
	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil || listing.Status == entity.ListingStatusDeleted {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, id.String())
	}

	return response.ListingToResponse(listing), nil
}

func optionsFromRequest(req request.ListingOptionsRequest) entity.ListingOptions {
	return entity.ListingOptions{
		Cancellation:          entity.OptionFromSentinel(req.Cancellation),
		GPS:                   entity.OptionFromSentinel(req.GPS),
		HomeDelivery:          entity.OptionFromSentinel(req.HomeDelivery),
		BabyChair:             entity.OptionFromSentinel(req.BabyChair),
		TheftProtection:       entity.OptionFromSentinel(req.TheftProtection),
		CollisionDamageWaiver: entity.OptionFromSentinel(req.CollisionDamageWaiver),
		FullInsurance:         entity.OptionFromSentinel(req.FullInsurance),
		AdditionalDriver:      entity.OptionFromSentinel(req.AdditionalDriver),
	}
}

func parseLocationIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid location ID %s", ErrInvalidInterval, value)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *listingService) Create(ctx context.Context, supplierID uuid.UUID, req *request.CreateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create listing validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	locationIDs, err := parseLocationIDs(req.LocationIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &entity.Listing{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		SupplierID:         supplierID,
		CarName:            req.CarName,
		LocationIDs:        locationIDs,
		PricePerDay:        req.PricePerDay,
		Deposit:            req.Deposit,
		Inventory:          req.Inventory,
		Available:          req.Available,
		FuelPolicy:         entity.FuelPolicy(req.FuelPolicy),
		Mileage:            req.Mileage,
		PayLaterFeePercent: req.PayLaterFeePercent,
		Status:             entity.ListingStatusActive,
		Options:            optionsFromRequest(req.Options),
	}

	if err := s.repo.Listing.Create(ctx, listing); err != nil {
		return nil, err
	}

	if err := s.repo.Listing.SetLocations(ctx, listing.ID, locationIDs); err != nil {
		return nil, err
	}

	s.log.Info("Listing created",
		zap.String("listing_id", listing.ID.String()),
		zap.String("supplier_id", supplierID.String()),
		zap.String("car_name", listing.CarName),
	)

	return response.ListingToResponse(listing), nil
}

// ownsListing: suppliers manage their own listings, admins manage all.
func ownsListing(listing *entity.Listing, requesterID uuid.UUID, role string) bool {
	if role == string(entity.RoleAdmin) {
		return true
	}
	return listing.SupplierID == requesterID
}

func (s *listingService) Update(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID, req *request.UpdateListingRequest) (*response.ListingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update listing validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, utils.FormatValidationErrors(errs))
	}

	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing == nil || !ownsListing(listing, requesterID, requesterRole) {
		return nil, fmt.Errorf("%w: listing %s", ErrNotFound, id.String())
	}

	locationIDs, err := parseLocationIDs(req.LocationIDs)
	if err != nil {
		return nil, err
	}

	listing.CarName = req.CarName
	listing.LocationIDs = locationIDs
	listing.PricePerDay = req.PricePerDay
	listing.Deposit = req.Deposit
	listing.Inventory = req.Inventory
	listing.Available = req.Available
	listing.FuelPolicy = entity.FuelPolicy(req.FuelPolicy)
	listing.Mileage = req.Mileage
	listing.PayLaterFeePercent = req.PayLaterFeePercent
	listing.Options = optionsFromRequest(req.Options)
	listing.UpdatedAt = time.Now()

	if err := s.repo.Listing.Update(ctx, listing); err != nil {
		return nil, err
	}

	if err := s.repo.Listing.SetLocations(ctx, listing.ID, locationIDs); err != nil {
		return nil, err
	}

	return response.ListingToResponse(listing), nil
}

func (s *listingService) Delete(ctx context.Context, requesterID uuid.UUID, requesterRole string, id uuid.UUID) error {
	listing, err := s.repo.Listing.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing == nil || !ownsListing(listing, requesterID, requesterRole) {
		return fmt.Errorf("%w: listing %s", ErrNotFound, id.String())
	}

	if err := s.repo.Listing.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Listing deleted", zap.String("listing_id", id.String()))
	return nil
}
