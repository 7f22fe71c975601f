package service

import (
	"context"
	"sort"

	"github.com/shamanic-technologies/email-sending-service/internal/logger"
	"github.com/shamanic-technologies/email-sending-service/internal/model"
	"github.com/shamanic-technologies/email-sending-service/internal/provider"
)

// StatsRequest selects which providers to query and how to aggregate.
// An empty Channel queries both providers; an empty GroupBy returns the
// flat aggregate shape.
type StatsRequest struct {
	Channel model.Channel        `json:"channel,omitempty"`
	Filter  model.StatsFilter    `json:"filter"`
	GroupBy model.GroupDimension `json:"groupBy,omitempty"`
}

// AggregateStats is the flat response: one slot per queried channel, each
// carrying either normalized stats or that channel's own error
type AggregateStats struct {
	Transactional *model.ChannelStats `json:"transactional,omitempty"`
	Broadcast     *model.ChannelStats `json:"broadcast,omitempty"`
}

// GroupedStats is the grouped response
type GroupedStats struct {
	Groups []model.StatsGroup `json:"groups"`
}

// StatsService aggregates heterogeneous provider metrics into one schema
type StatsService struct {
	transactional provider.Transactional
	broadcast     provider.Broadcast
	log           *logger.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(transactional provider.Transactional, broadcast provider.Broadcast, log *logger.Logger) *StatsService {
	return &StatsService{
		transactional: transactional,
		broadcast:     broadcast,
		log:           log.WithComponent("stats"),
	}
}

// Aggregate runs the flat aggregation. Providers are queried in parallel
// and each channel's outcome is independent: a failed provider yields an
// error marker under its own key while the other channel still reports
// normalized stats.
func (s *StatsService) Aggregate(ctx context.Context, req StatsRequest) *AggregateStats {
	wantT, wantB := wantedChannels(req.Channel)
	q := provider.StatsQuery{Filter: req.Filter}

	out := &AggregateStats{}

	if wantT && wantB {
		rt, rb := gather2(
			func() (model.RawStats, error) { return s.transactional.Stats(ctx, q) },
			func() (model.RawStats, error) { return s.broadcast.Stats(ctx, q) },
		)
		out.Transactional = channelStats(rt.value, rt.err)
		out.Broadcast = channelStats(rb.value, rb.err)
	} else if wantT {
		raw, err := s.transactional.Stats(ctx, q)
		out.Transactional = channelStats(raw, err)
	} else if wantB {
		raw, err := s.broadcast.Stats(ctx, q)
		out.Broadcast = channelStats(raw, err)
	}

	if out.Transactional != nil && out.Transactional.Error != "" {
		s.log.Warn().Str("channel", string(model.ChannelTransactional)).Str("error", out.Transactional.Error).Msg("stats provider failed")
	}
	if out.Broadcast != nil && out.Broadcast.Error != "" {
		s.log.Warn().Str("channel", string(model.ChannelBroadcast)).Str("error", out.Broadcast.Error).Msg("stats provider failed")
	}

	return out
}

// Grouped runs the grouped aggregation, merging both providers' buckets by
// group key. A failed provider contributes zero groups rather than an error
// marker; when both fail the result is simply an empty list.
func (s *StatsService) Grouped(ctx context.Context, req StatsRequest) *GroupedStats {
	wantT, wantB := wantedChannels(req.Channel)
	q := provider.StatsQuery{Filter: req.Filter, GroupBy: req.GroupBy}

	var tGroups, bGroups []model.RawStatsGroup

	if wantT && wantB {
		rt, rb := gather2(
			func() ([]model.RawStatsGroup, error) { return s.transactional.GroupedStats(ctx, q) },
			func() ([]model.RawStatsGroup, error) { return s.broadcast.GroupedStats(ctx, q) },
		)
		tGroups = s.groupsOrNone(model.ChannelTransactional, rt.value, rt.err)
		bGroups = s.groupsOrNone(model.ChannelBroadcast, rb.value, rb.err)
	} else if wantT {
		groups, err := s.transactional.GroupedStats(ctx, q)
		tGroups = s.groupsOrNone(model.ChannelTransactional, groups, err)
	} else if wantB {
		groups, err := s.broadcast.GroupedStats(ctx, q)
		bGroups = s.groupsOrNone(model.ChannelBroadcast, groups, err)
	}

	merged := make(map[string]*model.StatsGroup)
	for _, g := range tGroups {
		stats := model.Normalize(g.Stats)
		merged[g.Key] = &model.StatsGroup{Key: g.Key, Transactional: &stats}
	}
	for _, g := range bGroups {
		stats := model.Normalize(g.Stats)
		if existing, ok := merged[g.Key]; ok {
			existing.Broadcast = &stats
		} else {
			merged[g.Key] = &model.StatsGroup{Key: g.Key, Broadcast: &stats}
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]model.StatsGroup, 0, len(merged))
	for _, key := range keys {
		groups = append(groups, *merged[key])
	}

	return &GroupedStats{Groups: groups}
}

func (s *StatsService) groupsOrNone(channel model.Channel, groups []model.RawStatsGroup, err error) []model.RawStatsGroup {
	if err != nil {
		s.log.Warn().Err(err).Str("channel", string(channel)).Msg("grouped stats provider failed, contributing no groups")
		return nil
	}
	return groups
}

func wantedChannels(channel model.Channel) (transactional, broadcast bool) {
	switch channel {
	case model.ChannelTransactional:
		return true, false
	case model.ChannelBroadcast:
		return false, true
	default:
		return true, true
	}
}

func channelStats(raw model.RawStats, err error) *model.ChannelStats {
	if err != nil {
		return &model.ChannelStats{Error: err.Error()}
	}
	stats := model.Normalize(raw)
	return &model.ChannelStats{Stats: &stats}
}
