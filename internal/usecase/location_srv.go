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

	"go.uber.org/zap"
)

type LocationService interface {
	List(ctx context.Context) ([]*response.LocationResponse, error)
	Create(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error)
}

type locationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewLocationService(repo *repository.Repository, log *zap.Logger) LocationService {
	return &locationService{
		repo: repo,
		log:  log,
	}
}

func (s *locationService) List(ctx context.Context) ([]*response.LocationResponse, error) {
	locations, err := s.repo.Location.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]*response.LocationResponse, 0, len(locations))
	for _, location := range locations {
		items = append(items, response.LocationToResponse(location))
	}

	return items, nil
}

func (s *locationService) Create(ctx context.Context, req *request.CreateLocationRequest) (*response.LocationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create location validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	location := &entity.Location{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
	}

	if err := s.repo.Location.Create(ctx, location); err != nil {
		return nil, err
	}

	s.log.Info("Location created", zap.String("location_id", location.ID.String()), zap.String("name", location.Name))
	return response.LocationToResponse(location), nil
}
