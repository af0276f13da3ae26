package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"emptycup-directory/internal/core/auth"
	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/service"
	httpez "emptycup-directory/internal/transport/http/ez"
	mdw "emptycup-directory/internal/transport/http/middleware"
	"emptycup-directory/pkg/utils"
)

const RoleAdmin = "admin"

// 单个上传文件上限
const maxUploadFileBytes = 4 << 20

// Credentials 管理员账号；PasswordHash 为 bcrypt，空表示禁用登录
type Credentials struct {
	Username     string
	PasswordHash string
}

type AdminHandler struct {
	catalog *service.CatalogService
	jwter   *auth.JWTer
	creds   Credentials
	log     *zap.Logger
}

func NewAdminHandler(catalog *service.CatalogService, jwter *auth.JWTer, creds Credentials, l *zap.Logger) *AdminHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AdminHandler{catalog: catalog, jwter: jwter, creds: creds, log: l}
}

type loginIn struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginOut struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type uploadFileResult struct {
	File    string   `json:"file"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors,omitempty"`
	Skipped bool     `json:"skipped,omitempty"`
}

// MountAdmin g 为 /admin/v1；登录公开，其余要求 admin 角色
func (h *AdminHandler) MountAdmin(g *gin.RouterGroup) {
	public := httpez.New(g)

	httpez.RegisterAction(public, httpez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			if h.creds.PasswordHash == "" {
				return loginOut{}, httpez.Unauthorized("admin login disabled")
			}
			if strings.TrimSpace(in.Username) != h.creds.Username || !utils.CheckPassword(in.Password, h.creds.PasswordHash) {
				h.log.Warn("admin login rejected", zap.String("username", in.Username), zap.String("ip", c.ClientIP()))
				return loginOut{}, httpez.Unauthorized("invalid credentials")
			}
			tok, err := h.jwter.Issue(h.creds.Username, RoleAdmin)
			if err != nil || tok == "" {
				return loginOut{}, httpez.Internal("issue token failed", err)
			}
			return loginOut{Token: tok, Role: RoleAdmin}, nil
		},
	})

	authed := g.Group("")
	authed.Use(mdw.AuthJWT(h.jwter, RoleAdmin))
	ez := httpez.New(authed)

	httpez.RegisterAction(ez, httpez.Action[struct{}, service.Dashboard]{
		Method: http.MethodGet,
		Path:   "/dashboard",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (service.Dashboard, error) {
			d, err := h.catalog.Dashboard(c.Request.Context())
			if err != nil {
				return service.Dashboard{}, fail(err)
			}
			return d, nil
		},
	})

	ez.GET("/designers", func(c *gin.Context) (any, error) {
		ps, err := h.catalog.List(c.Request.Context())
		if err != nil {
			return nil, fail(err)
		}
		return gin.H{"total": len(ps), "items": ps}, nil
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, *domain.Profile]{
		Method: http.MethodPost,
		Path:   "/designers",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Profile, error) {
			raw, err := c.GetRawData()
			if err != nil {
				return nil, httpez.BadRequest("read body: " + err.Error())
			}
			p, err := h.catalog.CreateJSON(c.Request.Context(), raw)
			if err != nil {
				return nil, fail(err)
			}
			h.log.Info("designer created", zap.Int64("id", p.ID), zap.String("name", p.Name), zap.String("by", c.GetString("userId")))
			return p, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/designers/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Roles:  []string{RoleAdmin},
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := paramID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
				return nil, fail(err)
			}
			h.log.Info("designer deleted", zap.Int64("id", id), zap.String("by", c.GetString("userId")))
			return gin.H{"id": id}, nil
		},
	})

	httpez.POSTFILES(ez, "/designers/upload", "files", h.upload)
}

// upload 先解析校验全部文件，任何一条有问题则整体拒绝；全部合法再一次性入库
func (h *AdminHandler) upload(c *gin.Context, files []*multipart.FileHeader) (any, error) {
	var (
		all      []domain.Profile
		results  = make([]uploadFileResult, 0, len(files))
		problems []string
	)
	for _, fh := range files {
		res := uploadFileResult{File: filepath.Base(fh.Filename)}
		if !strings.EqualFold(filepath.Ext(fh.Filename), ".json") {
			res.Skipped = true
			res.Errors = []string{"not a .json file"}
			results = append(results, res)
			continue
		}
		ps, err := decodeUpload(fh)
		if err != nil {
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				return nil, httpez.Internal("read upload failed", err)
			}
			res.Errors = ve.Problems
			for _, p := range ve.Problems {
				problems = append(problems, res.File+": "+p)
			}
		} else {
			res.Count = len(ps)
			all = append(all, ps...)
		}
		results = append(results, res)
	}

	if len(problems) > 0 {
		return nil, fail(&domain.ValidationError{Problems: problems})
	}
	if len(all) == 0 {
		return nil, httpez.BadRequest("no valid JSON files uploaded")
	}
	n, err := h.catalog.ImportProfiles(c.Request.Context(), all)
	if err != nil {
		return nil, fail(err)
	}
	return gin.H{"imported": n, "files": results}, nil
}

func decodeUpload(fh *multipart.FileHeader) ([]domain.Profile, error) {
	if fh.Size > maxUploadFileBytes {
		return nil, &domain.ValidationError{Problems: []string{fmt.Sprintf("file larger than %d bytes", maxUploadFileBytes)}}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	raw, err := io.ReadAll(io.LimitReader(f, maxUploadFileBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return domain.DecodeProfiles(raw)
}
