package chi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
)

// --- Mock: searchuc.Searcher ---

type mockSearcher struct {
	searchFn func(ctx context.Context, req request.Request) (result.Result, error)
	lastReq  request.Request
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, req request.Request) (result.Result, error) {
	m.calls++
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return result.New(nil, req.Page(), req.PageSize(), 0), nil
}

// --- Mock: HealthChecker ---

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

func healthyReport() healthuc.Report {
	return healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}
}

func newTestRouter(s *mockSearcher, h *mockHealth, timeout time.Duration) http.Handler {
	if h == nil {
		h = &mockHealth{report: healthyReport()}
	}
	srv := NewServer(s, h, Config{Limits: request.DefaultLimits(), Timeout: timeout}, zap.NewNop())
	return NewRouter(srv, RouterConfig{}, zap.NewNop())
}
