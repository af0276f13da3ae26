package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"emptycup-directory/internal/core/cache"
	"emptycup-directory/internal/domain"
)

// HTTPSource GET 一个静态 JSON 数组
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Profile, error) {
	cli := s.Client
	if cli == nil {
		cli = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	res, err := cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP %d", s.URL, res.StatusCode)
	}
	return decode(res.Body)
}

// FileSource 从磁盘读取静态 JSON
type FileSource struct {
	Path string
}

func (s *FileSource) Fetch(_ context.Context) ([]domain.Profile, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()
	return decode(f)
}

// decode 丢弃没有 id 或评分越界的条目；静态数据不经过管理端校验
func decode(r io.Reader) ([]domain.Profile, error) {
	var ps []domain.Profile
	if err := json.NewDecoder(r).Decode(&ps); err != nil {
		return nil, fmt.Errorf("decode designers: %w", err)
	}
	seen := make(map[int64]struct{}, len(ps))
	out := ps[:0]
	for _, p := range ps {
		if _, dup := seen[p.ID]; dup || p.ID <= 0 || p.Rating < 0 || p.Rating > 5 {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

const CatalogCacheKey = "directory:designers"

// RepoSource 从数据库读取，可选 Redis 缓存
type RepoSource struct {
	Repo  domain.DesignerRepository
	Cache *cache.Cache
	TTL   time.Duration
}

func (s *RepoSource) Fetch(ctx context.Context) ([]domain.Profile, error) {
	if s.Cache == nil {
		return s.Repo.List(ctx)
	}
	ps, err := cache.GetOrLoadJSON(s.Cache, ctx, CatalogCacheKey, s.TTL, s.Repo.List)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []domain.Profile{}
	}
	return ps, nil
}

// Invalidate 管理端写操作后清掉缓存
func (s *RepoSource) Invalidate(ctx context.Context) error {
	if s == nil || s.Cache == nil {
		return nil
	}
	return s.Cache.Delete(ctx, CatalogCacheKey)
}
