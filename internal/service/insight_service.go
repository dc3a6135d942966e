package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/llm"
	"evolve-coach/internal/repository"
)

const relatedInsightLimit = 3

// InsightService stores one embedded note per coaching turn and retrieves the
// notes closest to the current message. Failures are logged and swallowed so
// memory never blocks a coaching reply.
type InsightService struct {
	logger   *zap.Logger
	insights repository.InsightRepository
	embedder llm.Client
}

func NewInsightService(logger *zap.Logger, insights repository.InsightRepository, embedder llm.Client) *InsightService {
	return &InsightService{
		logger:   logger,
		insights: insights,
		embedder: embedder,
	}
}

func (s *InsightService) Record(ctx context.Context, userID, sessionID, content string, stage domain.BehaviorStage, phase domain.GrowPhase) {
	if s == nil || s.insights == nil || s.embedder == nil {
		return
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	embedding, err := s.embedder.CreateEmbedding(ctx, content)
	if err != nil {
		s.logger.Warn("insight embedding failed", zap.Error(err))
		return
	}
	insight := domain.SessionInsight{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Content:   content,
		Stage:     stage,
		Phase:     phase,
		Embedding: pgvector.NewVector(embedding),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.insights.Create(ctx, insight); err != nil {
		s.logger.Warn("insight store failed", zap.Error(err))
	}
}

func (s *InsightService) Related(ctx context.Context, userID, query string) ([]domain.SessionInsight, error) {
	if s == nil || s.insights == nil || s.embedder == nil {
		return nil, nil
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	embedding, err := s.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}
	return s.insights.Search(ctx, userID, pgvector.NewVector(embedding), relatedInsightLimit)
}
