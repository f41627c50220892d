package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/repository"
)

// ResourceService — реестр специалистов, кабинетов и оборудования.
type ResourceService struct {
	resources repository.ResourceRepository
	services  repository.ServiceRepository
}

func NewResourceService(
	resources repository.ResourceRepository,
	services repository.ServiceRepository,
) *ResourceService {
	return &ResourceService{resources: resources, services: services}
}

type ResourceInput struct {
	Name         string               `json:"name"`
	Type         model.ResourceType   `json:"type"`
	Availability map[string]bool      `json:"availability"`
	Skills       []string             `json:"skills"`
	ServiceIDs   []uuid.UUID          `json:"serviceIds"`
	Capacity     int64                `json:"capacity"`
	Status       model.ResourceStatus `json:"status"`
	Phone        string               `json:"phone"`
	Email        string               `json:"email"`
}

func (s *ResourceService) buildResource(ctx context.Context, dst *model.Resource, in ResourceInput) error {
	if in.Name == "" {
		return ErrNameRequired
	}

	switch in.Type {
	case model.ResourceTypeSpecialist, model.ResourceTypeRoom, model.ResourceTypeEquipment:
	default:
		return fmt.Errorf("unknown resource type %q", in.Type)
	}
	switch in.Status {
	case "":
		in.Status = model.ResourceStatusActive
	case model.ResourceStatusActive, model.ResourceStatusInactive,
		model.ResourceStatusBusy, model.ResourceStatusVacation:
	default:
		return fmt.Errorf("unknown resource status %q", in.Status)
	}

	services, err := s.services.ListByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return fmt.Errorf("load resource services: %w", err)
	}
	if len(services) != len(in.ServiceIDs) {
		return fmt.Errorf("%w: resource references missing services", ErrUnknownService)
	}

	dst.Name = in.Name
	dst.Type = in.Type
	dst.Capacity = in.Capacity
	dst.Status = in.Status
	dst.Phone = in.Phone
	dst.Email = in.Email
	dst.Services = services
	if err := dst.SetAvailabilityMap(in.Availability); err != nil {
		return err
	}
	return dst.SetSkillList(in.Skills)
}

func (s *ResourceService) Create(ctx context.Context, in ResourceInput) (*model.Resource, error) {
	res := &model.Resource{}
	if err := s.buildResource(ctx, res, in); err != nil {
		return nil, err
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return res, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, in ResourceInput) (*model.Resource, error) {
	res, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, id)
	}
	if err := s.buildResource(ctx, res, in); err != nil {
		return nil, err
	}
	if err := s.resources.Update(ctx, res); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return res, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	return s.resources.Delete(ctx, id)
}

func (s *ResourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	return s.resources.GetByID(ctx, id)
}

func (s *ResourceService) List(ctx context.Context, limit, offset int) ([]model.Resource, int64, error) {
	return s.resources.List(ctx, limit, offset)
}

func (s *ResourceService) ListByType(ctx context.Context, rtype model.ResourceType) ([]model.Resource, error) {
	switch rtype {
	case model.ResourceTypeSpecialist, model.ResourceTypeRoom, model.ResourceTypeEquipment:
	default:
		return nil, fmt.Errorf("unknown resource type %q", rtype)
	}
	return s.resources.ListByType(ctx, rtype)
}
