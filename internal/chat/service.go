package chat

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"travelagg/internal/catalog"
	"travelagg/pkg/apperr"
	"travelagg/pkg/idgen"
	"travelagg/pkg/logger"
)

const historyLimit = 200

var ErrAgentNotSubscribed = errors.New("agent does not accept messages")

// Catalog resolves the package a message is about and its agent.
type Catalog interface {
	Package(ctx context.Context, id string) (*catalog.Package, error)
	Agent(ctx context.Context, id string) (*catalog.Agent, error)
}

type Service struct {
	repo    Repository
	catalog Catalog
	ids     idgen.Generator
	logger  logger.Client
	now     func() time.Time
}

func NewService(repo Repository, catalog Catalog, ids idgen.Generator, logger logger.Client) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		ids:     ids,
		logger:  logger,
		now:     time.Now,
	}
}

// Send stores a message from userID to the agent of req.PackageID. Only
// subscribed agents take messages.
func (s *Service) Send(ctx context.Context, userID string, req SendRequest) (*Message, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, apperr.Validation("message must not be empty")
	}
	if len([]rune(text)) > maxMessageLength {
		return nil, apperr.Validation("message is too long")
	}

	pkg, err := s.activePackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}

	agent, err := s.catalog.Agent(ctx, pkg.AgentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsSubscribed {
		return nil, apperr.New(http.StatusForbidden, apperr.ErrorCodeForbidden, "This agent does not accept messages", ErrAgentNotSubscribed)
	}

	m := &Message{
		ID:         s.ids.NextID(),
		PackageID:  pkg.ID,
		UserID:     userID,
		SenderType: SenderUser,
		Message:    text,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save chat message", logger.Err(err))
		return nil, apperr.Internal(err)
	}

	s.logger.Info("Chat message sent",
		logger.Field{Key: "chat_id", Value: m.ID},
		logger.Field{Key: "package_id", Value: m.PackageID},
		logger.Field{Key: "agent_id", Value: agent.ID},
	)
	return m, nil
}

// History returns userID's conversation about a package, oldest first.
func (s *Service) History(ctx context.Context, userID, packageID string) ([]Message, error) {
	if _, err := s.activePackage(ctx, packageID); err != nil {
		return nil, err
	}

	messages, err := s.repo.Thread(ctx, packageID, userID, historyLimit)
	if err != nil {
		s.logger.Error("Failed to load chat history", logger.Err(err))
		return nil, apperr.Internal(err)
	}
	return messages, nil
}

func (s *Service) activePackage(ctx context.Context, id string) (*catalog.Package, error) {
	pkg, err := s.catalog.Package(ctx, id)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, apperr.NotFound("Package not found")
	}
	return pkg, nil
}
