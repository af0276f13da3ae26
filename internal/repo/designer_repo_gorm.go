package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/feature/designer"
)

type DesignerRepo struct{ db *gorm.DB }

var _ domain.DesignerRepository = (*DesignerRepo)(nil)

func NewDesignerRepo(db *gorm.DB) *DesignerRepo { return &DesignerRepo{db: db} }

func (r *DesignerRepo) Migrate() error { return r.db.AutoMigrate(&designer.DesignerModel{}) }

// List 与前端默认排序一致：经验倒序
func (r *DesignerRepo) List(ctx context.Context) ([]domain.Profile, error) {
	var ms []designer.DesignerModel
	if err := r.db.WithContext(ctx).Order("experience DESC").Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toProfiles(ms), nil
}

func (r *DesignerRepo) FindByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var m designer.DesignerModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDesignerNotFound
	}
	if err != nil {
		return nil, err
	}
	p := m.Profile()
	return &p, nil
}

func (r *DesignerRepo) Create(ctx context.Context, p *domain.Profile) error {
	m := designer.FromProfile(*p)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

// CreateBatch 全部成功或全部回滚
func (r *DesignerRepo) CreateBatch(ctx context.Context, ps []domain.Profile) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	ms := make([]designer.DesignerModel, 0, len(ps))
	for _, p := range ps {
		m := designer.FromProfile(p)
		m.ID = 0
		ms = append(ms, m)
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ms).Error
	})
	if err != nil {
		return 0, err
	}
	return len(ms), nil
}

func (r *DesignerRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&designer.DesignerModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDesignerNotFound
	}
	return nil
}

func (r *DesignerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&designer.DesignerModel{}).Count(&n).Error
	return n, err
}

func (r *DesignerRepo) Recent(ctx context.Context, n int) ([]domain.Profile, error) {
	if n <= 0 {
		n = 5
	}
	var ms []designer.DesignerModel
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toProfiles(ms), nil
}

// SeedIfEmpty 空表时写入示例数据，返回写入条数
func (r *DesignerRepo) SeedIfEmpty(ctx context.Context) (int, error) {
	n, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	return r.CreateBatch(ctx, domain.SampleProfiles())
}

func toProfiles(ms []designer.DesignerModel) []domain.Profile {
	out := make([]domain.Profile, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Profile())
	}
	return out
}
