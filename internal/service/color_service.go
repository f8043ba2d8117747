package service

import (
	"context"

	"vape-shop/internal/domain"
	"vape-shop/internal/repository"
)

// ColorService defines the interface for color business logic
type ColorService interface {
	Create(ctx context.Context, color *domain.Color) (*domain.Color, error)
	List(ctx context.Context) ([]domain.Color, error)
}

type colorService struct {
	colorRepo repository.ColorRepository
}

// NewColorService creates a new instance of ColorService
func NewColorService(colorRepo repository.ColorRepository) ColorService {
	return &colorService{colorRepo: colorRepo}
}

func (s *colorService) Create(ctx context.Context, color *domain.Color) (*domain.Color, error) {
	id, err := s.colorRepo.Create(ctx, color)
	if err != nil {
		return nil, err
	}
	color.ID = id

	return color, nil
}

func (s *colorService) List(ctx context.Context) ([]domain.Color, error) {
	return s.colorRepo.List(ctx)
}
