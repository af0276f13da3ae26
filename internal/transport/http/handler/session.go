package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emptycup-directory/internal/health"
	"emptycup-directory/internal/service"
	httpez "emptycup-directory/internal/transport/http/ez"
	"emptycup-directory/internal/view"
)

// SessionHandler 浏览会话接口：每个动作执行后返回最新的 Page
type SessionHandler struct {
	mgr *service.Manager
	log *zap.Logger
}

func NewSessionHandler(mgr *service.Manager, l *zap.Logger) *SessionHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &SessionHandler{mgr: mgr, log: l}
}

func (h *SessionHandler) Priority() int { return 20 }

type sessionOut struct {
	ID     string         `json:"id"`
	Splash *health.Splash `json:"splash,omitempty"`
	Page   view.Page      `json:"page"`
}

type sortIn struct {
	Label string `json:"label" binding:"required"`
}

type tabIn struct {
	Tab string `json:"tab" binding:"required"`
}

type dialogIn struct {
	Kind       string `json:"kind" binding:"required"`
	DesignerID int64  `json:"designerId"`
}

type reportIn struct {
	Reason      string `json:"reason"`
	Description string `json:"description" binding:"max=2000"`
}

func (h *SessionHandler) MountAPI(g *gin.RouterGroup) {
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[struct{}, sessionOut]{
		Method: http.MethodPost,
		Path:   "/sessions",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (sessionOut, error) {
			s, splash := h.mgr.Create(c.Request.Context())
			page, err := s.Do("", nil)
			if err != nil {
				return sessionOut{}, fail(err)
			}
			return sessionOut{ID: s.ID, Splash: splash, Page: page}, nil
		},
	})

	h.action(ez, http.MethodGet, "/sessions/:sid", "", nil)

	httpez.RegisterAction(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/sessions/:sid",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			sid := c.Param("sid")
			if err := h.mgr.Delete(sid); err != nil {
				return nil, fail(err)
			}
			return gin.H{"id": sid}, nil
		},
	})

	h.action(ez, http.MethodPost, "/sessions/:sid/shortlist/:id", "shortlist",
		func(c *gin.Context, v *view.Controller) error {
			id, err := knownDesigner(c, v)
			if err != nil {
				return err
			}
			v.ToggleShortlist(id)
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/hide/:id", "hide",
		func(c *gin.Context, v *view.Controller) error {
			id, err := knownDesigner(c, v)
			if err != nil {
				return err
			}
			v.Hide(id)
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/undo", "undo",
		func(_ *gin.Context, v *view.Controller) error {
			v.Undo()
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/sort-menu", "sort_menu",
		func(_ *gin.Context, v *view.Controller) error {
			v.ToggleSortMenu()
			return nil
		})

	h.action(ez, http.MethodPut, "/sessions/:sid/sort", "sort",
		func(c *gin.Context, v *view.Controller) error {
			var in sortIn
			if err := c.ShouldBindJSON(&in); err != nil {
				return httpez.BadRequest(err.Error())
			}
			if !v.SelectSort(in.Label) {
				return httpez.BadRequest("unknown sort option: " + in.Label)
			}
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/shortlisted-only", "shortlisted_only",
		func(_ *gin.Context, v *view.Controller) error {
			v.ToggleShortlistedOnly()
			return nil
		})

	h.action(ez, http.MethodPut, "/sessions/:sid/tab", "tab",
		func(c *gin.Context, v *view.Controller) error {
			var in tabIn
			if err := c.ShouldBindJSON(&in); err != nil {
				return httpez.BadRequest(err.Error())
			}
			t, ok := view.ParseTab(in.Tab)
			if !ok {
				return httpez.BadRequest("unknown tab: " + in.Tab)
			}
			v.SwitchTab(t)
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/dialog", "dialog_open",
		func(c *gin.Context, v *view.Controller) error {
			var in dialogIn
			if err := c.ShouldBindJSON(&in); err != nil {
				return httpez.BadRequest(err.Error())
			}
			d, ok := view.ParseDialog(in.Kind)
			if !ok {
				return httpez.BadRequest("unknown dialog: " + in.Kind)
			}
			if !v.OpenDialog(d, in.DesignerID) {
				return httpez.NotFound("designer not found")
			}
			return nil
		})

	h.action(ez, http.MethodDelete, "/sessions/:sid/dialog", "dialog_close",
		func(_ *gin.Context, v *view.Controller) error {
			v.CloseDialog()
			return nil
		})

	h.action(ez, http.MethodPost, "/sessions/:sid/report", "report",
		func(c *gin.Context, v *view.Controller) error {
			var in reportIn
			if err := c.ShouldBindJSON(&in); err != nil {
				return httpez.BadRequest(err.Error())
			}
			rep, ok := v.SubmitReport(in.Reason, in.Description)
			if !ok {
				return httpez.BadRequest("report dialog is not open")
			}
			h.log.Info("designer reported",
				zap.String("session", c.Param("sid")),
				zap.Int64("designer", rep.DesignerID),
				zap.String("reason", rep.Reason),
			)
			return nil
		})
}

// action 注册一个会话动作：查会话、串行执行 fn、返回渲染结果
func (h *SessionHandler) action(ez httpez.EZ, method, path, name string, fn func(c *gin.Context, v *view.Controller) error) {
	httpez.RegisterAction(ez, httpez.Action[struct{}, view.Page]{
		Method: method,
		Path:   path,
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (view.Page, error) {
			s, err := h.mgr.Get(c.Param("sid"))
			if err != nil {
				return view.Page{}, fail(err)
			}
			var do func(*view.Controller) error
			if fn != nil {
				do = func(v *view.Controller) error { return fn(c, v) }
			}
			page, err := s.Do(name, do)
			if err != nil {
				return view.Page{}, fail(err)
			}
			return page, nil
		},
	})
}

func knownDesigner(c *gin.Context, v *view.Controller) (int64, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return 0, err
	}
	if _, ok := v.Store().Profile(id); !ok {
		return 0, httpez.NotFound("designer not found")
	}
	return id, nil
}
