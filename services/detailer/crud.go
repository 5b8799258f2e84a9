// File: services/detailer/crud.go
package detailer

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "autobook/database/repository/catalog"
	detailerRepo "autobook/database/repository/detailer"
	"autobook/models"
	"autobook/utils"
)

func (s *DefaultDetailerService) UpsertProfile(ctx context.Context, d models.Detailer) error {
	if d.ID == "" {
		return errors.New("detailer id is required")
	}
	return s.Repo.Upsert(ctx, d)
}

func (s *DefaultDetailerService) GetProfile(ctx context.Context, detailerID string) (*models.Detailer, error) {
	d, err := s.Repo.GetByID(ctx, detailerID)
	if errors.Is(err, detailerRepo.ErrNotFound) {
		return nil, utils.NewServiceError(utils.CodeNotFound, "detailer not found")
	}
	return d, err
}

func (s *DefaultDetailerService) AddService(ctx context.Context, detailerID string, input models.ServiceInput) (string, error) {
	id, err := s.Catalog.Create(ctx, models.Service{
		DetailerID: detailerID,
		Name:       input.Name,
		Price:      input.Price,
	})
	if err != nil {
		return "", fmt.Errorf("failed to add service: %w", err)
	}
	return id, nil
}

func (s *DefaultDetailerService) ListServices(ctx context.Context, detailerID string) ([]models.Service, error) {
	return s.Catalog.ListByDetailer(ctx, detailerID)
}

func (s *DefaultDetailerService) UpdateService(ctx context.Context, serviceID string, input models.ServiceInput) error {
	err := s.Catalog.Update(ctx, serviceID, input)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.NewServiceError(utils.CodeNotFound, "service not found")
	}
	return err
}

func (s *DefaultDetailerService) DeleteService(ctx context.Context, serviceID string) error {
	err := s.Catalog.Delete(ctx, serviceID)
	if errors.Is(err, catalogRepo.ErrNotFound) {
		return utils.NewServiceError(utils.CodeNotFound, "service not found")
	}
	return err
}
