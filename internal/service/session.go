package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"emptycup-directory/internal/health"
	"emptycup-directory/internal/listing"
	"emptycup-directory/internal/view"
	"emptycup-directory/pkg/utils"
)

var ErrSessionNotFound = errors.New("session not found")

var (
	actionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "directory_actions_total", Help: "Directory user actions"},
		[]string{"action"},
	)
	// 进程内所有 Manager 共用，只做增减
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "directory_sessions_active", Help: "Live directory sessions"},
	)
)

func init() { prometheus.MustRegister(actionsTotal, sessionsActive) }

// Session 一个浏览会话：列表状态 + 界面状态。mu 保证动作串行执行
type Session struct {
	ID   string
	View *view.Controller

	mu       sync.Mutex
	lastSeen time.Time
}

// Do 串行执行一次用户动作并返回渲染结果
func (s *Session) Do(action string, fn func(c *view.Controller) error) (view.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		if err := fn(s.View); err != nil {
			return view.Page{}, err
		}
	}
	if action != "" {
		actionsTotal.WithLabelValues(action).Inc()
	}
	return s.View.Render(), nil
}

type Options struct {
	Source     listing.Source
	Prober     *health.Prober
	UndoWindow time.Duration
	TTL        time.Duration
	AfterFunc  listing.AfterFunc
	Now        func() time.Time
	Logger     *zap.Logger
}

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	opt Options
	log *zap.Logger
}

func NewManager(o Options) *Manager {
	if o.TTL <= 0 {
		o.TTL = 30 * time.Minute
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Manager{sessions: map[string]*Session{}, opt: o, log: o.Logger}
}

// Create 新建会话：加载一次档案并跑启动页探测（探测失败不影响创建）
func (m *Manager) Create(ctx context.Context) (*Session, *health.Splash) {
	store := listing.NewStore(listing.Options{
		UndoWindow: m.opt.UndoWindow,
		AfterFunc:  m.opt.AfterFunc,
		Logger:     m.log,
	})
	store.Load(ctx, m.opt.Source)

	var splash *health.Splash
	if m.opt.Prober != nil {
		s := m.opt.Prober.Splash(ctx)
		splash = &s
	}

	s := &Session{ID: utils.NewID(), View: view.NewController(store), lastSeen: m.opt.Now()}
	m.mu.Lock()
	m.sessions[s.ID] = s
	sessionsActive.Inc()
	m.mu.Unlock()

	actionsTotal.WithLabelValues("create").Inc()
	m.log.Info("session created", zap.String("session", s.ID), zap.Int("designers", len(store.Profiles())))
	return s, splash
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.lastSeen = m.opt.Now()
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		sessionsActive.Dec()
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.View.Store().Close()
	return nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep 清理空闲超过 TTL 的会话，返回清理数量
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.lastSeen) > m.opt.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	sessionsActive.Sub(float64(len(expired)))
	m.mu.Unlock()

	for _, s := range expired {
		s.View.Store().Close()
	}
	if len(expired) > 0 {
		m.log.Info("sessions expired", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run 定期清理，ctx 取消后退出并关闭全部会话
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return
		case <-t.C:
			m.Sweep(m.opt.Now())
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	sessionsActive.Sub(float64(len(all)))
	m.mu.Unlock()
	for _, s := range all {
		s.View.Store().Close()
	}
}
