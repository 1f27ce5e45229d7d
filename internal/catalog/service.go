package catalog

import (
	"context"
	"fmt"

	"travelagg/pkg/apperr"
	"travelagg/pkg/logger"
)

// AgentFilterSponsored lists subscribed agents, whose packages are promoted.
const AgentFilterSponsored = "sponsored"

type Service struct {
	provider Provider
	logger   logger.Client
}

func NewService(provider Provider, logger logger.Client) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Current returns the snapshot, mapping provider failures to CATALOG_UNAVAILABLE.
func (s *Service) Current(ctx context.Context) (*Snapshot, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		s.logger.Error("Failed to load catalog", logger.Err(err))
		return nil, apperr.CatalogUnavailable(err)
	}
	return snap, nil
}

// Agents lists active agents, optionally filtered by type or "sponsored".
func (s *Service) Agents(ctx context.Context, filter string) ([]Agent, error) {
	var match func(Agent) bool
	switch filter {
	case "":
		match = func(Agent) bool { return true }
	case string(AgentTypeTravel), string(AgentTypeTransport):
		match = func(a Agent) bool { return string(a.Type) == filter }
	case AgentFilterSponsored:
		match = func(a Agent) bool { return a.IsSubscribed }
	default:
		return nil, apperr.InvalidRequest(fmt.Sprintf("unknown agent_type %q", filter), nil)
	}

	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Agent, 0)
	for _, a := range snap.Agents() {
		if a.IsActive && match(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) Agent(ctx context.Context, id string) (*Agent, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := snap.Agent(id)
	if !ok {
		return nil, apperr.NotFound("Agent not found")
	}
	return &a, nil
}

// Packages lists active packages, optionally those of one agent.
func (s *Service) Packages(ctx context.Context, agentID string) ([]Package, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Package, 0)
	for _, p := range snap.Packages() {
		if !p.IsActive || (agentID != "" && p.AgentID != agentID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Package(ctx context.Context, id string) (*Package, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snap.Package(id)
	if !ok {
		return nil, apperr.NotFound("Package not found")
	}
	return &p, nil
}

// Ribbons returns the active ribbons in display order.
func (s *Service) Ribbons(ctx context.Context) ([]Ribbon, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Ribbon, 0)
	for _, r := range snap.Ribbons() {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) Document(ctx context.Context) (*Document, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	doc := snap.Document()
	return &doc, nil
}
