package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Cfg  config.Config
	Repo domain.Repository
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	repo          domain.Repository
	lookupTimeout time.Duration
}

func New(p Params) domain.Service {
	timeout := time.Duration(p.Cfg.LookupTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("tenant.service"),
		repo:          p.Repo,
		lookupTimeout: timeout,
	}
}

// resolver is one step of the resolution chain: extract a signal from the
// input and look it up. A miss returns (nil, nil) so the chain can continue.
type resolver struct {
	name   string
	signal func(domain.ResolveInput) string
	lookup func(ctx context.Context, value string) (*domain.Tenant, error)
}

func (s *Service) resolvers() []resolver {
	return []resolver{
		{
			name:   "domain",
			signal: func(in domain.ResolveInput) string { return in.Domain },
			lookup: func(ctx context.Context, v string) (*domain.Tenant, error) {
				return s.repo.FindByDomain(ctx, s.db, v)
			},
		},
		{
			name:   "bundle_id",
			signal: func(in domain.ResolveInput) string { return in.BundleID },
			lookup: func(ctx context.Context, v string) (*domain.Tenant, error) {
				return s.repo.FindByBundleID(ctx, s.db, v)
			},
		},
		{
			name:   "agent_code",
			signal: func(in domain.ResolveInput) string { return in.AgentCode },
			lookup: func(ctx context.Context, v string) (*domain.Tenant, error) {
				return s.repo.FindByCode(ctx, s.db, v)
			},
		},
	}
}

func (s *Service) Resolve(ctx context.Context, input domain.ResolveInput) (*domain.Tenant, error) {
	input.Domain = strings.ToLower(strings.TrimSpace(input.Domain))
	input.BundleID = strings.TrimSpace(input.BundleID)
	input.AgentCode = strings.TrimSpace(input.AgentCode)

	for _, r := range s.resolvers() {
		value := r.signal(input)
		if value == "" {
			continue
		}

		lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
		tenant, err := r.lookup(lookupCtx, value)
		cancel()
		if err != nil {
			s.log.Error("tenant lookup failed",
				zap.String("resolver", r.name),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrLookupFailed, r.name, err)
		}
		if tenant != nil {
			return tenant, nil
		}
	}

	return nil, domain.ErrTenantNotFound
}

func (s *Service) LoadConfig(ctx context.Context, tenantID snowflake.ID) (*domain.TenantConfig, error) {
	loadCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	var (
		modules    []domain.TenantModule
		features   []domain.TenantFeature
		whitelabel *domain.TenantWhitelabel
		plan       *domain.TenantPlan
	)

	// The four collections are independent; load them concurrently and join.
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error {
		var err error
		modules, err = s.repo.ListModules(gctx, s.db, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		features, err = s.repo.ListFeatures(gctx, s.db, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		whitelabel, err = s.repo.GetWhitelabel(gctx, s.db, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		plan, err = s.repo.GetPlan(gctx, s.db, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: config: %v", domain.ErrLookupFailed, err)
	}

	cfg := &domain.TenantConfig{
		Modules:  make([]string, 0, len(modules)),
		Features: make([]string, 0, len(features)),
	}
	for _, m := range modules {
		cfg.Modules = append(cfg.Modules, m.Module)
	}
	for _, f := range features {
		cfg.Features = append(cfg.Features, f.Feature)
	}
	if whitelabel != nil {
		cfg.Whitelabel = &domain.Whitelabel{
			BrandName: whitelabel.BrandName,
			LogoURL:   whitelabel.LogoURL,
			Domain:    whitelabel.Domain,
			Theme:     whitelabel.Theme,
		}
	}
	if plan != nil {
		cfg.Plan = &domain.PlanInfo{
			Plan:      plan.Plan,
			Status:    plan.Status,
			ExpiresAt: plan.ExpiresAt,
		}
	}
	return cfg, nil
}

func (s *Service) Context(ctx context.Context, input domain.ResolveInput) (*domain.TenantContext, error) {
	tenant, err := s.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	cfg, err := s.LoadConfig(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TenantContext{
		TenantID:    tenant.ID.String(),
		TenantCode:  tenant.Code,
		Environment: tenant.Environment,
		Modules:     cfg.Modules,
		Features:    cfg.Features,
		Whitelabel:  cfg.Whitelabel,
		Plan:        cfg.Plan,
	}, nil
}
