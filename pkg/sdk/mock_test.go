package shopsearch

import (
	"context"

	"github.com/kailas-cloud/shopsearch/internal/domain/search/request"
	"github.com/kailas-cloud/shopsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/shopsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, req request.Request) (result.Result, error)
	suggestFn func(ctx context.Context, raw string) ([]result.Correction, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req request.Request) (result.Result, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) Suggest(ctx context.Context, raw string) ([]result.Correction, error) {
	return m.suggestFn(ctx, raw)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, healthSvc healthUseCase) *Client {
	return &Client{
		searchSvc: searchSvc,
		healthSvc: healthSvc,
		limits:    request.DefaultLimits(),
	}
}
