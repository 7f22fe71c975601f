package service

import (
	"context"
	"errors"

	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
)

var errUpstream = errors.New("connection refused")

type fakeTransactional struct {
	sendCalls    int
	sendFn       func(provider.TransactionalSend) (*provider.TransactionalSendResponse, error)
	statsFn      func(provider.StatsQuery) (model.RawStats, error)
	groupedFn    func(provider.StatsQuery) ([]model.RawStatsGroup, error)
	statusFn     func(provider.StatusQuery) (map[string]model.ProviderStatus, error)
	lastSendBody provider.TransactionalSend
}

func (f *fakeTransactional) Send(_ context.Context, req provider.TransactionalSend) (*provider.TransactionalSendResponse, error) {
	f.sendCalls++
	f.lastSendBody = req
	if f.sendFn == nil {
		return &provider.TransactionalSendResponse{MessageID: "pm_1"}, nil
	}
	return f.sendFn(req)
}

func (f *fakeTransactional) Stats(_ context.Context, q provider.StatsQuery) (model.RawStats, error) {
	if f.statsFn == nil {
		return model.RawStats{}, nil
	}
	return f.statsFn(q)
}

func (f *fakeTransactional) GroupedStats(_ context.Context, q provider.StatsQuery) ([]model.RawStatsGroup, error) {
	if f.groupedFn == nil {
		return nil, nil
	}
	return f.groupedFn(q)
}

func (f *fakeTransactional) Status(_ context.Context, q provider.StatusQuery) (map[string]model.ProviderStatus, error) {
	if f.statusFn == nil {
		return map[string]model.ProviderStatus{}, nil
	}
	return f.statusFn(q)
}

type fakeBroadcast struct {
	sendCalls int
	sendFn    func(provider.BroadcastSend) (*provider.BroadcastSendResponse, error)
	statsFn   func(provider.StatsQuery) (model.RawStats, error)
	groupedFn func(provider.StatsQuery) ([]model.RawStatsGroup, error)
	statusFn  func(provider.StatusQuery) (map[string]model.ProviderStatus, error)
}

func (f *fakeBroadcast) Send(_ context.Context, req provider.BroadcastSend) (*provider.BroadcastSendResponse, error) {
	f.sendCalls++
	if f.sendFn == nil {
		return &provider.BroadcastSendResponse{CampaignID: "camp_1", LeadID: "lead_1", Added: 1}, nil
	}
	return f.sendFn(req)
}

func (f *fakeBroadcast) Stats(_ context.Context, q provider.StatsQuery) (model.RawStats, error) {
	if f.statsFn == nil {
		return model.RawStats{}, nil
	}
	return f.statsFn(q)
}

func (f *fakeBroadcast) GroupedStats(_ context.Context, q provider.StatsQuery) ([]model.RawStatsGroup, error) {
	if f.groupedFn == nil {
		return nil, nil
	}
	return f.groupedFn(q)
}

func (f *fakeBroadcast) Status(_ context.Context, q provider.StatusQuery) (map[string]model.ProviderStatus, error) {
	if f.statusFn == nil {
		return map[string]model.ProviderStatus{}, nil
	}
	return f.statusFn(q)
}

type fakeBrands struct {
	calls int
	getFn func(string) (*provider.Brand, error)
}

func (f *fakeBrands) Get(_ context.Context, brandID string) (*provider.Brand, error) {
	f.calls++
	if f.getFn == nil {
		return &provider.Brand{URL: "https://brand.example.com"}, nil
	}
	return f.getFn(brandID)
}

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

func intPtr(v int) *int {
	return &v
}
