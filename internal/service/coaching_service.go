package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionForbidden = errors.New("session belongs to another user")
	ErrEmptyMessage     = errors.New("empty message")
	ErrTooManyTurns     = errors.New("too many turns, slow down")
)

// CoachingService runs the conversation loop: it persists the transcript,
// re-derives the conversation analysis every turn, and builds the reply via
// the model-backed responder when one is wired, falling back to the
// deterministic composer otherwise.
type CoachingService struct {
	logger    *zap.Logger
	sessions  repository.SessionRepository
	messages  repository.MessageRepository
	emotions  repository.EmotionRepository
	scorer    EmotionScorer
	analyzer  *HistoryAnalyzer
	stages    StageClassifier
	phases    GrowSelector
	composer  ResponseComposer
	responder AIResponder
	insights  *InsightService
	limiter   TurnRateLimiter
}

func NewCoachingService(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages repository.MessageRepository,
	emotions repository.EmotionRepository,
	responder AIResponder,
	insights *InsightService,
	limiter TurnRateLimiter,
) *CoachingService {
	return &CoachingService{
		logger:    logger,
		sessions:  sessions,
		messages:  messages,
		emotions:  emotions,
		analyzer:  NewHistoryAnalyzer(),
		responder: responder,
		insights:  insights,
		limiter:   limiter,
	}
}

// StartSession opens a session. When the user already said something, that
// first utterance runs through a full turn; otherwise the welcome message is
// recorded as the first AI message of the transcript.
func (s *CoachingService) StartSession(ctx context.Context, userID, sessionType, initialMessage string) (domain.CoachingSession, domain.CoachReply, error) {
	if sessionType == "" {
		sessionType = "general"
	}
	initialMessage = strings.TrimSpace(initialMessage)
	if initialMessage != "" && s.limiter != nil && !s.limiter.Allow(userID) {
		return domain.CoachingSession{}, domain.CoachReply{}, ErrTooManyTurns
	}

	now := time.Now().UTC()
	session := domain.CoachingSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionType: sessionType,
		Status:      domain.SessionStatusActive,
		StartedAt:   now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return domain.CoachingSession{}, domain.CoachReply{}, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("coaching session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.String("session_type", sessionType),
	)

	if initialMessage != "" {
		reply, err := s.runTurn(ctx, session, initialMessage)
		if err != nil {
			return domain.CoachingSession{}, domain.CoachReply{}, err
		}
		return session, reply, nil
	}

	analysis := s.analyzer.Analyze(nil)
	reply := s.composer.Compose(domain.PhaseGoal, domain.StageContemplation, analysis)

	if err := s.recordMessage(ctx, session.ID, domain.SpeakerAI, reply.AIResponse, now); err != nil {
		return domain.CoachingSession{}, domain.CoachReply{}, err
	}
	return session, reply, nil
}

// ContinueSession processes one user turn end to end.
func (s *CoachingService) ContinueSession(ctx context.Context, sessionID, userID, userInput string) (domain.CoachReply, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return domain.CoachReply{}, ErrEmptyMessage
	}
	if s.limiter != nil && !s.limiter.Allow(userID) {
		return domain.CoachReply{}, ErrTooManyTurns
	}

	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return domain.CoachReply{}, err
	}
	return s.runTurn(ctx, session, userInput)
}

// runTurn persists the user message, re-derives the analysis and answers.
// The input must already be trimmed, non-empty and rate-checked.
func (s *CoachingService) runTurn(ctx context.Context, session domain.CoachingSession, userInput string) (domain.CoachReply, error) {
	history, err := s.messages.ListBySessionID(ctx, session.ID)
	if err != nil {
		return domain.CoachReply{}, fmt.Errorf("load history: %w", err)
	}

	now := time.Now().UTC()
	userMsg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: session.ID,
		Speaker:   domain.SpeakerUser,
		Content:   userInput,
		CreatedAt: now,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return domain.CoachReply{}, fmt.Errorf("store user message: %w", err)
	}
	history = append(history, userMsg)

	scores, dominant, confidence := s.scorer.AnalyzeEmotion(userInput)
	s.recordEmotion(ctx, session.ID, userMsg.ID, scores, dominant, confidence, now)

	analysis := s.analyzer.Analyze(history)
	if s.responder != nil && s.insights != nil {
		related, err := s.insights.Related(ctx, session.UserID, userInput)
		if err != nil {
			s.logger.Warn("related insight lookup failed", zap.Error(err))
		} else {
			analysis.PastInsights = related
		}
	}
	reply := s.buildReply(ctx, userInput, analysis)

	if err := s.recordMessage(ctx, session.ID, domain.SpeakerAI, reply.AIResponse, now.Add(time.Millisecond)); err != nil {
		return domain.CoachReply{}, err
	}

	if s.insights != nil {
		s.insights.Record(ctx, session.UserID, session.ID, userInput, reply.BehaviorStage, reply.GrowPhase)
	}

	s.logger.Info("coaching turn",
		zap.String("session_id", session.ID),
		zap.String("stage", string(reply.BehaviorStage)),
		zap.String("phase", string(reply.GrowPhase)),
		zap.String("dominant_emotion", dominant),
	)
	return reply, nil
}

// buildReply prefers the model-backed responder and falls back to the
// deterministic pipeline on any failure.
func (s *CoachingService) buildReply(ctx context.Context, userInput string, analysis domain.ConversationAnalysis) domain.CoachReply {
	stage := s.stages.AssessStageWithHistory(userInput, analysis)
	phase := s.phases.SelectPhase(userInput, analysis)

	if s.responder != nil {
		aiStage, err := s.responder.AssessStage(ctx, userInput)
		if err == nil && aiStage.Valid() {
			stage = aiStage
		}
		reply, err := s.responder.GenerateResponse(ctx, userInput, stage, analysis)
		if err == nil && strings.TrimSpace(reply.AIResponse) != "" {
			reply.BehaviorStage = stage
			reply.GrowPhase = phase
			return reply
		}
		if err != nil && !errors.Is(err, ErrAIUnavailable) {
			s.logger.Warn("ai responder failed, using rule-based reply", zap.Error(err))
		}
	}
	return s.composer.Compose(phase, stage, analysis)
}

type SessionHistory struct {
	Session  domain.CoachingSession   `json:"session"`
	Messages []domain.Message         `json:"messages"`
	Emotions []domain.EmotionAnalysis `json:"emotions"`
}

func (s *CoachingService) History(ctx context.Context, sessionID, userID string) (SessionHistory, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return SessionHistory{}, err
	}
	messages, err := s.messages.ListBySessionID(ctx, session.ID)
	if err != nil {
		return SessionHistory{}, fmt.Errorf("load history: %w", err)
	}
	emotions, err := s.emotions.ListBySessionID(ctx, session.ID)
	if err != nil {
		return SessionHistory{}, fmt.Errorf("load emotions: %w", err)
	}
	return SessionHistory{Session: session, Messages: messages, Emotions: emotions}, nil
}

func (s *CoachingService) loadOwnedSession(ctx context.Context, sessionID, userID string) (domain.CoachingSession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CoachingSession{}, ErrSessionNotFound
		}
		return domain.CoachingSession{}, err
	}
	if session.UserID != userID {
		return domain.CoachingSession{}, ErrSessionForbidden
	}
	return session, nil
}

func (s *CoachingService) recordMessage(ctx context.Context, sessionID, speaker, content string, at time.Time) error {
	msg := domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Speaker:   speaker,
		Content:   content,
		CreatedAt: at,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("store %s message: %w", speaker, err)
	}
	return nil
}

func (s *CoachingService) recordEmotion(ctx context.Context, sessionID, messageID string, scores domain.EmotionScores, dominant string, confidence float64, at time.Time) {
	if s.emotions == nil {
		return
	}
	row := domain.EmotionAnalysis{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		MessageID:  messageID,
		Scores:     scores,
		Dominant:   dominant,
		Confidence: confidence,
		AnalyzedAt: at,
	}
	if err := s.emotions.Create(ctx, row); err != nil {
		s.logger.Warn("emotion analysis store failed", zap.Error(err))
	}
}
