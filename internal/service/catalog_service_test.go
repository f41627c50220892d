package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Leganyst/booking-core/internal/model"
	"github.com/Leganyst/booking-core/internal/pricing"
	"github.com/Leganyst/booking-core/internal/repository"
)

func seedServices(t *testing.T, env *testEnv, specs ...model.Service) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(specs))
	for i := range specs {
		specs[i].IsActive = true
		if err := env.db.Create(&specs[i]).Error; err != nil {
			t.Fatalf("seed service %q: %v", specs[i].Name, err)
		}
		ids = append(ids, specs[i].ID)
	}
	return ids
}

func TestCatalogService_ServiceValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.catalog.CreateService(ctx, ServiceInput{DurationMin: 60, Price: 100})
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	_, err = env.catalog.CreateService(ctx, ServiceInput{Name: "Стрижка", DurationMin: 0, Price: 100})
	if !errors.Is(err, ErrBadDuration) {
		t.Fatalf("expected ErrBadDuration, got %v", err)
	}
	_, err = env.catalog.CreateService(ctx, ServiceInput{Name: "Стрижка", DurationMin: 60, Price: -1})
	if !errors.Is(err, ErrBadPrice) {
		t.Fatalf("expected ErrBadPrice, got %v", err)
	}

	svc, err := env.catalog.CreateService(ctx, ServiceInput{Name: "Стрижка", DurationMin: 60, Price: 1500})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if !svc.IsActive {
		t.Fatalf("new service must be active by default")
	}
}

func TestCatalogService_BundleServiceCountRule(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ids := seedServices(t, env,
		model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500},
		model.Service{Name: "Укладка", DurationMin: 30, Price: 800},
	)

	// Одна услуга — не комплекс.
	_, err := env.catalog.CreateBundle(ctx, BundleInput{Name: "Соло", ServiceIDs: ids[:1]})
	if !errors.Is(err, pricing.ErrBundleServiceCount) {
		t.Fatalf("expected ErrBundleServiceCount for 1 service, got %v", err)
	}

	// Правило действует и на обновление.
	b, err := env.catalog.CreateBundle(ctx, BundleInput{
		Name:        "Стрижка + укладка",
		ServiceIDs:  ids,
		PriceMode:   model.BundlePriceDiscount,
		DiscountPct: 15,
	})
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}

	_, err = env.catalog.UpdateBundle(ctx, b.ID.String(), BundleInput{Name: b.Name, ServiceIDs: ids[:1]})
	if !errors.Is(err, pricing.ErrBundleServiceCount) {
		t.Fatalf("expected ErrBundleServiceCount on update, got %v", err)
	}
}

func TestCatalogService_BundleRejectsMissingServices(t *testing.T) {
	env := newTestEnv(t)
	ids := seedServices(t, env, model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500})

	_, err := env.catalog.CreateBundle(context.Background(), BundleInput{
		Name:       "Битый состав",
		ServiceIDs: append(ids, uuid.New()),
	})
	if !errors.Is(err, ErrUnknownService) {
		t.Fatalf("expected ErrUnknownService, got %v", err)
	}
}

func TestCatalogService_QuoteBundle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ids := seedServices(t, env,
		model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500},
		model.Service{Name: "Укладка", DurationMin: 30, Price: 800},
	)

	b, err := env.catalog.CreateBundle(ctx, BundleInput{
		Name:        "Стрижка + укладка",
		ServiceIDs:  ids,
		PriceMode:   model.BundlePriceDiscount,
		DiscountPct: 15,
	})
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}

	q, err := env.catalog.QuoteBundle(ctx, b.ID.String())
	if err != nil {
		t.Fatalf("quote bundle: %v", err)
	}
	if q.Price != 1955 {
		t.Fatalf("expected price 1955, got %d", q.Price)
	}
	if q.DurationMin != 90 {
		t.Fatalf("expected duration 90, got %d", q.DurationMin)
	}
}

func TestCatalogService_DeleteServiceGuardsBundles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ids := seedServices(t, env,
		model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500},
		model.Service{Name: "Укладка", DurationMin: 30, Price: 800},
	)
	b, err := env.catalog.CreateBundle(ctx, BundleInput{Name: "Стрижка + укладка", ServiceIDs: ids})
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}

	// Удаление услуги из состава комплекса просадило бы его ниже двух услуг.
	if err := env.catalog.DeleteService(ctx, ids[0].String()); !errors.Is(err, ErrServiceInBundle) {
		t.Fatalf("expected ErrServiceInBundle, got %v", err)
	}

	if err := env.catalog.DeleteBundle(ctx, b.ID.String()); err != nil {
		t.Fatalf("delete bundle: %v", err)
	}
	if err := env.catalog.DeleteService(ctx, ids[0].String()); err != nil {
		t.Fatalf("delete service after bundle removal: %v", err)
	}
}

func TestCatalogService_ServiceLinksCarryCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ids := seedServices(t, env,
		model.Service{Name: "Стрижка", DurationMin: 60, Price: 1500},
		model.Service{Name: "Укладка", DurationMin: 30, Price: 800},
	)

	// Состав комплекса пишется через кастомную join-модель,
	// поэтому created_at в bundle_services обязан заполняться.
	b, err := env.catalog.CreateBundle(ctx, BundleInput{Name: "Стрижка + укладка", ServiceIDs: ids})
	if err != nil {
		t.Fatalf("create bundle: %v", err)
	}

	var bundleLinks []model.BundleService
	if err := env.db.Find(&bundleLinks, "bundle_id = ?", b.ID).Error; err != nil {
		t.Fatalf("load bundle_services: %v", err)
	}
	if len(bundleLinks) != 2 {
		t.Fatalf("expected 2 bundle links, got %d", len(bundleLinks))
	}
	for _, l := range bundleLinks {
		if l.CreatedAt.IsZero() {
			t.Fatalf("bundle_services.created_at is empty: %+v", l)
		}
	}

	// То же самое для услуг ресурса.
	resources := NewResourceService(
		repository.NewGormResourceRepository(env.db),
		repository.NewGormServiceRepository(env.db),
	)
	res, err := resources.Create(ctx, ResourceInput{
		Name:       "Анна Иванова",
		Type:       model.ResourceTypeSpecialist,
		ServiceIDs: ids,
	})
	if err != nil {
		t.Fatalf("create resource: %v", err)
	}

	var resourceLinks []model.ResourceService
	if err := env.db.Find(&resourceLinks, "resource_id = ?", res.ID).Error; err != nil {
		t.Fatalf("load resource_services: %v", err)
	}
	if len(resourceLinks) != 2 {
		t.Fatalf("expected 2 resource links, got %d", len(resourceLinks))
	}
	for _, l := range resourceLinks {
		if l.CreatedAt.IsZero() {
			t.Fatalf("resource_services.created_at is empty: %+v", l)
		}
	}
}

func TestCatalogService_GetServicesByIDsKeepsNameOrder(t *testing.T) {
	env := newTestEnv(t)
	ids := seedServices(t, env,
		model.Service{Name: "Укладка", DurationMin: 30, Price: 800},
		model.Service{Name: "Маникюр", DurationMin: 90, Price: 2500},
	)

	// Запрошенный порядок не важен: состав отдаётся по имени.
	services, err := env.catalog.GetServicesByIDs(context.Background(), []uuid.UUID{ids[0], ids[1]})
	if err != nil {
		t.Fatalf("get services by ids: %v", err)
	}
	if len(services) != 2 || services[0].Name != "Маникюр" {
		t.Fatalf("expected name order, got %v", services)
	}
}
