package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"emptycup-directory/internal/domain"
)

// Invalidator 目录写操作后通知缓存失效
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type CatalogService struct {
	repo domain.DesignerRepository
	inv  Invalidator
	log  *zap.Logger
}

func NewCatalogService(repo domain.DesignerRepository, inv Invalidator, l *zap.Logger) *CatalogService {
	if l == nil {
		l = zap.NewNop()
	}
	return &CatalogService{repo: repo, inv: inv, log: l}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	if err := domain.ValidateProfile(p, nil); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("create designer: %w", err)
	}
	s.invalidate(ctx)
	return &p, nil
}

// CreateJSON 管理端新建：原始请求体必须带齐全部字段
func (s *CatalogService) CreateJSON(ctx context.Context, raw []byte) (*domain.Profile, error) {
	p, err := domain.DecodeProfile(raw)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, p)
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Import 解析并校验整批数据，全部合法才写入
func (s *CatalogService) Import(ctx context.Context, raw []byte) (int, error) {
	ps, err := domain.DecodeProfiles(raw)
	if err != nil {
		return 0, err
	}
	return s.ImportProfiles(ctx, ps)
}

// ImportProfiles 已解析的档案整批写入（同一事务）
func (s *CatalogService) ImportProfiles(ctx context.Context, ps []domain.Profile) (int, error) {
	if len(ps) == 0 {
		return 0, &domain.ValidationError{Problems: []string{"no designers to import"}}
	}
	for i, p := range ps {
		if err := domain.ValidateProfile(p, nil); err != nil {
			return 0, fmt.Errorf("designer %d: %w", i+1, err)
		}
	}
	n, err := s.repo.CreateBatch(ctx, ps)
	if err != nil {
		return 0, fmt.Errorf("import designers: %w", err)
	}
	s.invalidate(ctx)
	s.log.Info("designers imported", zap.Int("count", n))
	return n, nil
}

type Dashboard struct {
	DesignerCount int64            `json:"designerCount"`
	Recent        []domain.Profile `json:"recent"`
}

func (s *CatalogService) Dashboard(ctx context.Context) (Dashboard, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count designers: %w", err)
	}
	recent, err := s.repo.Recent(ctx, 5)
	if err != nil {
		return Dashboard{}, fmt.Errorf("recent designers: %w", err)
	}
	return Dashboard{DesignerCount: n, Recent: recent}, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.inv == nil {
		return
	}
	if err := s.inv.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
