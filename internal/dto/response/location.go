package response

import (
	"car-rental-booking/internal/data/entity"
)

type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func LocationToResponse(location *entity.Location) *LocationResponse {
	return &LocationResponse{
		ID:   location.ID.String(),
		Name: location.Name,
	}
}
