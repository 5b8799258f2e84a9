package detailer

import (
	"context"

	catalogRepo "autobook/database/repository/catalog"
	detailerRepo "autobook/database/repository/detailer"
	slotRepo "autobook/database/repository/slot"
	"autobook/models"

	"go.uber.org/zap"
)

// DetailerService manages a detailer's profile, availability windows and
// service catalog.
type DetailerService interface {
	UpsertProfile(ctx context.Context, d models.Detailer) error
	GetProfile(ctx context.Context, detailerID string) (*models.Detailer, error)

	CreateSlots(ctx context.Context, detailerID string, inputs []models.SlotInput) ([]string, error)
	ListSlots(ctx context.Context, detailerID string) ([]models.Slot, error)
	ListAvailableSlots(ctx context.Context, detailerID string) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, detailerID, slotID string) error

	AddService(ctx context.Context, detailerID string, input models.ServiceInput) (string, error)
	ListServices(ctx context.Context, detailerID string) ([]models.Service, error)
	UpdateService(ctx context.Context, serviceID string, input models.ServiceInput) error
	DeleteService(ctx context.Context, serviceID string) error
}

// DefaultDetailerService implements DetailerService.
type DefaultDetailerService struct {
	Repo    detailerRepo.DetailerRepository
	Slots   slotRepo.SlotRepository
	Catalog catalogRepo.CatalogRepository
	Logger  *zap.Logger
}
