package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://localhost:5001/api"

	okDelay   = 1 * time.Second
	failDelay = 2 * time.Second
)

// Prober 探测 <base>/health；非 2xx 或网络错误都算失败
type Prober struct {
	BaseURL string
	Client  *http.Client
	Log     *zap.Logger
}

func NewProber(baseURL string, l *zap.Logger) *Prober {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &Prober{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 5 * time.Second},
		Log:     l,
	}
}

func (p *Prober) URL() string { return p.BaseURL + "/health" }

func (p *Prober) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(), nil)
	if err != nil {
		return err
	}
	res, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", res.StatusCode, http.StatusText(res.StatusCode))
	}
	return nil
}

// Splash 启动页结果：失败只是提示，ProceedAfter 之后照常进入主界面
type Splash struct {
	OK             bool          `json:"ok"`
	Message        string        `json:"message"`
	APIURL         string        `json:"apiUrl"`
	ProceedAfter   time.Duration `json:"-"`
	ProceedAfterMs int64         `json:"proceedAfterMs"`
}

func (p *Prober) Splash(ctx context.Context) Splash {
	s := Splash{APIURL: p.BaseURL}
	if err := p.Probe(ctx); err != nil {
		p.Log.Warn("api health probe failed", zap.String("url", p.URL()), zap.Error(err))
		s.Message = "API Error: " + err.Error()
		s.ProceedAfter = failDelay
	} else {
		s.OK = true
		s.Message = "API Connected"
		s.ProceedAfter = okDelay
	}
	s.ProceedAfterMs = s.ProceedAfter.Milliseconds()
	return s
}
