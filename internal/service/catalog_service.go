package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/pricing"
	"github.com/Leganyst/booking-core/internal/repository"
)

// CatalogService — услуги и комплексы.
type CatalogService struct {
	services  repository.ServiceRepository
	bundles   repository.BundleRepository
	resources repository.ResourceRepository
}

func NewCatalogService(
	services repository.ServiceRepository,
	bundles repository.BundleRepository,
	resources repository.ResourceRepository,
) *CatalogService {
	return &CatalogService{
		services:  services,
		bundles:   bundles,
		resources: resources,
	}
}

type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DurationMin int64  `json:"durationMin"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"isActive"`
}

func (in *ServiceInput) validate() error {
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.DurationMin <= 0 {
		return ErrBadDuration
	}
	if in.Price < 0 {
		return ErrBadPrice
	}
	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Name:        in.Name,
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Category:    in.Category,
		IsActive:    true,
	}
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, in ServiceInput) (*model.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, id)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	svc.Name = in.Name
	svc.Description = in.Description
	svc.DurationMin = in.DurationMin
	svc.Price = in.Price
	svc.Category = in.Category
	if in.IsActive != nil {
		svc.IsActive = *in.IsActive
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

// DeleteService удаляет услугу из каталога и отвязывает её от всех ресурсов,
// как это делал исходный реестр. Услуга в составе комплекса не удаляется:
// иначе комплекс молча просел бы ниже минимума из двух услуг.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	bundles, err := s.bundles.ListByServiceID(ctx, id)
	if err != nil {
		return fmt.Errorf("check bundles: %w", err)
	}
	if len(bundles) > 0 {
		return fmt.Errorf("%w: %s", ErrServiceInBundle, bundles[0].Name)
	}
	if err := s.resources.DetachService(ctx, id); err != nil {
		return fmt.Errorf("detach service: %w", err)
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *CatalogService) ListServices(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Service, int64, error) {
	return s.services.List(ctx, onlyActive, limit, offset)
}

// GetServicesByIDs возвращает услуги в порядке каталога, не в порядке запроса.
func (s *CatalogService) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Service, error) {
	return s.services.ListByIDs(ctx, ids)
}

type BundleInput struct {
	Name              string                   `json:"name"`
	ServiceIDs        []uuid.UUID              `json:"serviceIds"`
	PriceMode         model.BundlePriceMode    `json:"priceMode"`
	DiscountPct       int64                    `json:"priceDiscountPct"`
	PriceFixed        int64                    `json:"priceFixed"`
	DurationMode      model.BundleDurationMode `json:"durationMode"`
	DurationCustomMin int64                    `json:"durationCustomMin"`
	Rules             model.ResourceRules      `json:"resourceRules"`
	IsActive          *bool                    `json:"isActive"`
}

func (s *CatalogService) buildBundle(ctx context.Context, dst *model.Bundle, in BundleInput) error {
	if in.Name == "" {
		return ErrNameRequired
	}
	// Правило «2–5 услуг» проверяется здесь, централизованно,
	// а не только в редакторе комплексов.
	if err := pricing.ValidateServiceCount(len(in.ServiceIDs)); err != nil {
		return err
	}

	services, err := s.services.ListByIDs(ctx, in.ServiceIDs)
	if err != nil {
		return fmt.Errorf("load bundle services: %w", err)
	}
	if len(services) != len(in.ServiceIDs) {
		return fmt.Errorf("%w: bundle references missing services", ErrUnknownService)
	}

	switch in.PriceMode {
	case "", model.BundlePriceSum:
		in.PriceMode = model.BundlePriceSum
	case model.BundlePriceDiscount, model.BundlePriceFixed:
	default:
		return fmt.Errorf("unknown price mode %q", in.PriceMode)
	}
	switch in.DurationMode {
	case "", model.BundleDurationSum:
		in.DurationMode = model.BundleDurationSum
	case model.BundleDurationCustom:
	default:
		return fmt.Errorf("unknown duration mode %q", in.DurationMode)
	}

	dst.Name = in.Name
	dst.PriceMode = in.PriceMode
	dst.DiscountPct = in.DiscountPct
	dst.PriceFixed = in.PriceFixed
	dst.DurationMode = in.DurationMode
	dst.DurationCustomMin = in.DurationCustomMin
	dst.Services = services
	if in.IsActive != nil {
		dst.IsActive = *in.IsActive
	}
	return dst.SetResourceRules(in.Rules)
}

func (s *CatalogService) CreateBundle(ctx context.Context, in BundleInput) (*model.Bundle, error) {
	b := &model.Bundle{IsActive: true}
	if err := s.buildBundle(ctx, b, in); err != nil {
		return nil, err
	}
	if err := s.bundles.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create bundle: %w", err)
	}
	return b, nil
}

func (s *CatalogService) UpdateBundle(ctx context.Context, id string, in BundleInput) (*model.Bundle, error) {
	b, err := s.bundles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.buildBundle(ctx, b, in); err != nil {
		return nil, err
	}
	if err := s.bundles.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update bundle: %w", err)
	}
	return b, nil
}

func (s *CatalogService) DeleteBundle(ctx context.Context, id string) error {
	return s.bundles.Delete(ctx, id)
}

func (s *CatalogService) GetBundle(ctx context.Context, id string) (*model.Bundle, error) {
	return s.bundles.GetByID(ctx, id)
}

func (s *CatalogService) ListBundles(ctx context.Context, onlyActive bool, limit, offset int) ([]model.Bundle, int64, error) {
	return s.bundles.List(ctx, onlyActive, limit, offset)
}

func (s *CatalogService) BundlesByService(ctx context.Context, serviceID string) ([]model.Bundle, error) {
	return s.bundles.ListByServiceID(ctx, serviceID)
}

// BundleQuote — производные цена и длительность комплекса.
type BundleQuote struct {
	BundleID    uuid.UUID `json:"bundleId"`
	Price       int64     `json:"price"`
	DurationMin int64     `json:"durationMin"`
}

// QuoteBundle считает цену и длительность комплекса по его составу.
func (s *CatalogService) QuoteBundle(ctx context.Context, id string) (*BundleQuote, error) {
	b, err := s.bundles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BundleQuote{
		BundleID:    b.ID,
		Price:       pricing.Price(b, b.Services),
		DurationMin: pricing.Duration(b, b.Services),
	}, nil
}
