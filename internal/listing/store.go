package listing

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"emptycup-directory/internal/domain"
)

const DefaultUndoWindow = 5 * time.Second

// Source 档案数据来源（静态 JSON / 文件 / 数据库）
type Source interface {
	Fetch(ctx context.Context) ([]domain.Profile, error)
}

type Timer interface{ Stop() bool }

// AfterFunc 可替换的定时器工厂，测试里手动触发
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type Options struct {
	UndoWindow time.Duration
	AfterFunc  AfterFunc
	Logger     *zap.Logger
}

// undoSlot 单槽撤销寄存器：新的隐藏直接覆盖旧目标
type undoSlot struct {
	id    int64
	armed bool
	gen   uint64
	timer Timer
}

// Store 单个会话的列表状态
type Store struct {
	mu sync.Mutex

	profiles        []domain.Profile
	shortlist       Set
	hidden          Set
	onlyShortlisted bool
	sort            SortOption

	undo       undoSlot
	undoWindow time.Duration
	afterFunc  AfterFunc
	closed     bool

	log *zap.Logger
}

func NewStore(o Options) *Store {
	if o.UndoWindow <= 0 {
		o.UndoWindow = DefaultUndoWindow
	}
	if o.AfterFunc == nil {
		o.AfterFunc = stdAfterFunc
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Store{
		shortlist:  Set{},
		hidden:     Set{},
		sort:       DefaultSort,
		undoWindow: o.UndoWindow,
		afterFunc:  o.AfterFunc,
		log:        o.Logger,
	}
}

// Load 拉取一次档案；任何失败都降级为空列表，只记日志
func (s *Store) Load(ctx context.Context, src Source) {
	var profiles []domain.Profile
	if src != nil {
		ps, err := src.Fetch(ctx)
		if err != nil {
			s.log.Warn("load designers failed", zap.Error(err))
		} else {
			profiles = ps
		}
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	s.mu.Lock()
	s.profiles = profiles
	s.mu.Unlock()
}

func (s *Store) Profiles() []domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Profile(nil), s.profiles...)
}

// Profile 按 id 查找已加载的档案
func (s *Store) Profile(id int64) (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Profile{}, false
}

func (s *Store) Visible() []domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DeriveVisible(s.profiles, s.hidden, s.shortlist, s.onlyShortlisted, s.sort)
}

// ToggleShortlist 返回切换后的收藏状态
func (s *Store) ToggleShortlist(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shortlist.Has(id) {
		delete(s.shortlist, id)
		return false
	}
	s.shortlist[id] = struct{}{}
	return true
}

func (s *Store) IsShortlisted(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortlist.Has(id)
}

func (s *Store) Hide(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.hidden[id] = struct{}{}

	if s.undo.timer != nil {
		s.undo.timer.Stop()
	}
	s.undo.gen++
	gen := s.undo.gen
	s.undo.id = id
	s.undo.armed = true
	s.undo.timer = s.afterFunc(s.undoWindow, func() { s.expire(gen) })
}

// expire 旧定时器（已被覆盖或已关闭）直接丢弃
func (s *Store) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.undo.gen || !s.undo.armed {
		return
	}
	s.undo.armed = false
	s.undo.timer = nil
}

// Undo 撤销最近一次隐藏；寄存器未就绪时返回 false
func (s *Store) Undo() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.undo.armed {
		return 0, false
	}
	id := s.undo.id
	delete(s.hidden, id)
	s.disarm()
	return id, true
}

func (s *Store) disarm() {
	if s.undo.timer != nil {
		s.undo.timer.Stop()
		s.undo.timer = nil
	}
	s.undo.armed = false
	s.undo.gen++
}

// UndoTarget 当前可撤销的 id
func (s *Store) UndoTarget() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.undo.armed {
		return 0, false
	}
	return s.undo.id, true
}

func (s *Store) SetSort(opt SortOption) {
	s.mu.Lock()
	s.sort = opt
	s.mu.Unlock()
}

func (s *Store) Sort() SortOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sort
}

func (s *Store) SetOnlyShortlisted(v bool) {
	s.mu.Lock()
	s.onlyShortlisted = v
	s.mu.Unlock()
}

func (s *Store) OnlyShortlisted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.onlyShortlisted
}

// Snapshot 派生状态快照
type Snapshot struct {
	Shortlist       []int64    `json:"shortlist"`
	Hidden          []int64    `json:"hidden"`
	OnlyShortlisted bool       `json:"onlyShortlisted"`
	Sort            SortOption `json:"sort"`
	UndoTarget      *int64     `json:"undoTarget,omitempty"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Shortlist:       sortedIDs(s.shortlist),
		Hidden:          sortedIDs(s.hidden),
		OnlyShortlisted: s.onlyShortlisted,
		Sort:            s.sort,
	}
	if s.undo.armed {
		id := s.undo.id
		snap.UndoTarget = &id
	}
	return snap
}

// Close 停掉挂起的定时器；之后到达的回调全部丢弃
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.disarm()
	s.closed = true
}

func sortedIDs(s Set) []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
