package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"evolve-coach/internal/domain"
)

type fakeSessionRepo struct {
	sessions map[string]domain.CoachingSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]domain.CoachingSession)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session domain.CoachingSession) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id string) (domain.CoachingSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return domain.CoachingSession{}, pgx.ErrNoRows
	}
	return session, nil
}

func (f *fakeSessionRepo) ListRecentByUser(_ context.Context, userID string, _ int) ([]domain.CoachingSession, error) {
	var out []domain.CoachingSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) CountByUser(_ context.Context, userID string) (int, error) {
	n := 0
	for _, s := range f.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionRepo) SetStatus(_ context.Context, id, status string) error {
	session, ok := f.sessions[id]
	if !ok {
		return pgx.ErrNoRows
	}
	session.Status = status
	f.sessions[id] = session
	return nil
}

type fakeMessageRepo struct {
	messages []domain.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, message domain.Message) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeEmotionRepo struct {
	rows []domain.EmotionAnalysis
}

func (f *fakeEmotionRepo) Create(_ context.Context, analysis domain.EmotionAnalysis) error {
	f.rows = append(f.rows, analysis)
	return nil
}

func (f *fakeEmotionRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.EmotionAnalysis, error) {
	var out []domain.EmotionAnalysis
	for _, r := range f.rows {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeResponder struct {
	stage    domain.BehaviorStage
	stageErr error
	reply    domain.CoachReply
	err      error
	called   bool
}

func (f *fakeResponder) AssessStage(_ context.Context, _ string) (domain.BehaviorStage, error) {
	return f.stage, f.stageErr
}

func (f *fakeResponder) GenerateResponse(_ context.Context, _ string, _ domain.BehaviorStage, _ domain.ConversationAnalysis) (domain.CoachReply, error) {
	f.called = true
	return f.reply, f.err
}

func newTestCoachingService(sessions *fakeSessionRepo, messages *fakeMessageRepo, emotions *fakeEmotionRepo, responder AIResponder, limiter TurnRateLimiter) *CoachingService {
	return NewCoachingService(zap.NewNop(), sessions, messages, emotions, responder, nil, limiter)
}

func TestCoachingServiceStartSession_RecordsWelcome(t *testing.T) {
	sessions := newFakeSessionRepo()
	messages := &fakeMessageRepo{}
	svc := newTestCoachingService(sessions, messages, &fakeEmotionRepo{}, nil, nil)

	session, reply, err := svc.StartSession(context.Background(), "u1", "", "")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.SessionType != "general" {
		t.Fatalf("expected default session type, got %q", session.SessionType)
	}
	if session.Status != domain.SessionStatusActive {
		t.Fatalf("expected active session, got %q", session.Status)
	}
	if reply.AIResponse == "" {
		t.Fatalf("expected welcome response")
	}
	if reply.GrowPhase != domain.PhaseGoal || reply.BehaviorStage != domain.StageContemplation {
		t.Fatalf("unexpected welcome stage/phase: %s/%s", reply.BehaviorStage, reply.GrowPhase)
	}
	if len(messages.messages) != 1 {
		t.Fatalf("expected one stored message, got %d", len(messages.messages))
	}
	if messages.messages[0].Speaker != domain.SpeakerAI {
		t.Fatalf("expected welcome to be stored as AI message")
	}
	if messages.messages[0].Content != reply.AIResponse {
		t.Fatalf("expected stored welcome to match reply")
	}
}

func TestCoachingServiceStartSession_WithInitialMessage(t *testing.T) {
	sessions := newFakeSessionRepo()
	messages := &fakeMessageRepo{}
	emotions := &fakeEmotionRepo{}
	svc := newTestCoachingService(sessions, messages, emotions, nil, nil)

	session, reply, err := svc.StartSession(context.Background(), "u1", "", "毎日の運動を続けている")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if reply.BehaviorStage != domain.StageMaintenance {
		t.Fatalf("expected first utterance to be classified, got %s", reply.BehaviorStage)
	}
	if len(messages.messages) != 2 {
		t.Fatalf("expected user and AI messages, got %d", len(messages.messages))
	}
	if messages.messages[0].Speaker != domain.SpeakerUser || messages.messages[0].Content != "毎日の運動を続けている" {
		t.Fatalf("expected initial message stored first, got %+v", messages.messages[0])
	}
	if messages.messages[1].Speaker != domain.SpeakerAI || messages.messages[1].Content != reply.AIResponse {
		t.Fatalf("expected AI reply stored second, got %+v", messages.messages[1])
	}
	if len(emotions.rows) != 1 || emotions.rows[0].SessionID != session.ID {
		t.Fatalf("expected one emotion row for the initial message, got %+v", emotions.rows)
	}
	if emotions.rows[0].MessageID != messages.messages[0].ID {
		t.Fatalf("expected emotion row tied to the initial message")
	}
}

func TestCoachingServiceStartSession_InitialMessageRateLimited(t *testing.T) {
	svc := newTestCoachingService(newFakeSessionRepo(), &fakeMessageRepo{}, &fakeEmotionRepo{}, nil, &mockTurnLimiter{allow: false})

	if _, _, err := svc.StartSession(context.Background(), "u1", "", "続けたい習慣があります"); !errors.Is(err, ErrTooManyTurns) {
		t.Fatalf("expected ErrTooManyTurns, got %v", err)
	}

	// The welcome path never consumes a turn.
	if _, _, err := svc.StartSession(context.Background(), "u1", "", ""); err != nil {
		t.Fatalf("welcome start should bypass the limiter: %v", err)
	}
}

func TestCoachingServiceContinueSession_RejectsEmptyInput(t *testing.T) {
	svc := newTestCoachingService(newFakeSessionRepo(), &fakeMessageRepo{}, &fakeEmotionRepo{}, nil, nil)

	if _, err := svc.ContinueSession(context.Background(), "s1", "u1", "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestCoachingServiceContinueSession_UnknownSession(t *testing.T) {
	svc := newTestCoachingService(newFakeSessionRepo(), &fakeMessageRepo{}, &fakeEmotionRepo{}, nil, nil)

	if _, err := svc.ContinueSession(context.Background(), "missing", "u1", "こんにちは"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCoachingServiceContinueSession_ForbidsOtherUser(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = domain.CoachingSession{ID: "s1", UserID: "owner", Status: domain.SessionStatusActive}
	svc := newTestCoachingService(sessions, &fakeMessageRepo{}, &fakeEmotionRepo{}, nil, nil)

	if _, err := svc.ContinueSession(context.Background(), "s1", "intruder", "こんにちは"); !errors.Is(err, ErrSessionForbidden) {
		t.Fatalf("expected ErrSessionForbidden, got %v", err)
	}
}

func TestCoachingServiceContinueSession_RateLimited(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = domain.CoachingSession{ID: "s1", UserID: "u1", Status: domain.SessionStatusActive}
	limiter := &mockTurnLimiter{allow: false}
	svc := newTestCoachingService(sessions, &fakeMessageRepo{}, &fakeEmotionRepo{}, nil, limiter)

	if _, err := svc.ContinueSession(context.Background(), "s1", "u1", "こんにちは"); !errors.Is(err, ErrTooManyTurns) {
		t.Fatalf("expected ErrTooManyTurns, got %v", err)
	}
}

type mockTurnLimiter struct {
	allow bool
}

func (m *mockTurnLimiter) Allow(_ string) bool {
	return m.allow
}

func TestCoachingServiceContinueSession_RuleBasedTurn(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = domain.CoachingSession{
		ID:        "s1",
		UserID:    "u1",
		Status:    domain.SessionStatusActive,
		StartedAt: time.Now().UTC(),
	}
	messages := &fakeMessageRepo{}
	emotions := &fakeEmotionRepo{}
	svc := newTestCoachingService(sessions, messages, emotions, nil, nil)

	reply, err := svc.ContinueSession(context.Background(), "s1", "u1", "毎日の運動を続けている")
	if err != nil {
		t.Fatalf("continue session: %v", err)
	}
	if reply.AIResponse == "" {
		t.Fatalf("expected a response")
	}
	if reply.BehaviorStage != domain.StageMaintenance {
		t.Fatalf("expected maintenance stage, got %s", reply.BehaviorStage)
	}

	if len(messages.messages) != 2 {
		t.Fatalf("expected user and AI messages, got %d", len(messages.messages))
	}
	if messages.messages[0].Speaker != domain.SpeakerUser || messages.messages[1].Speaker != domain.SpeakerAI {
		t.Fatalf("unexpected speaker order: %s, %s", messages.messages[0].Speaker, messages.messages[1].Speaker)
	}
	if !messages.messages[1].CreatedAt.After(messages.messages[0].CreatedAt) {
		t.Fatalf("expected AI message to sort after the user message")
	}

	if len(emotions.rows) != 1 {
		t.Fatalf("expected one emotion analysis row, got %d", len(emotions.rows))
	}
	if emotions.rows[0].MessageID != messages.messages[0].ID {
		t.Fatalf("expected emotion row tied to the user message")
	}
}

func TestCoachingServiceContinueSession_ResponderOverridesStage(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = domain.CoachingSession{ID: "s1", UserID: "u1", Status: domain.SessionStatusActive}
	responder := &fakeResponder{
		stage: domain.StageAction,
		reply: domain.CoachReply{
			AIResponse:    "いい調子ですね。次の一歩は何にしますか？",
			NextQuestions: []string{"今週は何から始めますか？"},
			EmotionalTone: domain.ToneSupportive,
			Confidence:    0.9,
		},
	}
	svc := newTestCoachingService(sessions, &fakeMessageRepo{}, &fakeEmotionRepo{}, responder, nil)

	reply, err := svc.ContinueSession(context.Background(), "s1", "u1", "何か変えたいと考えている")
	if err != nil {
		t.Fatalf("continue session: %v", err)
	}
	if !responder.called {
		t.Fatalf("expected responder to be used")
	}
	if reply.AIResponse != responder.reply.AIResponse {
		t.Fatalf("expected responder reply, got %q", reply.AIResponse)
	}
	if reply.BehaviorStage != domain.StageAction {
		t.Fatalf("expected responder stage override, got %s", reply.BehaviorStage)
	}
	if reply.GrowPhase == "" {
		t.Fatalf("expected grow phase to be populated")
	}
}

func TestCoachingServiceContinueSession_FallsBackOnResponderError(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.sessions["s1"] = domain.CoachingSession{ID: "s1", UserID: "u1", Status: domain.SessionStatusActive}
	responder := &fakeResponder{
		stageErr: errors.New("model down"),
		err:      errors.New("model down"),
	}
	svc := newTestCoachingService(sessions, &fakeMessageRepo{}, &fakeEmotionRepo{}, responder, nil)

	reply, err := svc.ContinueSession(context.Background(), "s1", "u1", "続けている習慣があります")
	if err != nil {
		t.Fatalf("continue session: %v", err)
	}
	if reply.AIResponse == "" {
		t.Fatalf("expected rule-based fallback response")
	}
	if reply.BehaviorStage != domain.StageMaintenance {
		t.Fatalf("expected rule-based stage, got %s", reply.BehaviorStage)
	}
}

func TestCoachingServiceHistory(t *testing.T) {
	sessions := newFakeSessionRepo()
	messages := &fakeMessageRepo{}
	emotions := &fakeEmotionRepo{}
	svc := newTestCoachingService(sessions, messages, emotions, nil, nil)

	session, _, err := svc.StartSession(context.Background(), "u1", "goal_setting", "")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := svc.ContinueSession(context.Background(), session.ID, "u1", "目標について話したい"); err != nil {
		t.Fatalf("continue session: %v", err)
	}

	history, err := svc.History(context.Background(), session.ID, "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history.Session.ID != session.ID {
		t.Fatalf("expected session %q, got %q", session.ID, history.Session.ID)
	}
	if len(history.Messages) != 3 {
		t.Fatalf("expected welcome plus one turn (3 messages), got %d", len(history.Messages))
	}
	if len(history.Emotions) != 1 {
		t.Fatalf("expected one emotion row, got %d", len(history.Emotions))
	}

	if _, err := svc.History(context.Background(), session.ID, "other"); !errors.Is(err, ErrSessionForbidden) {
		t.Fatalf("expected ErrSessionForbidden for other user, got %v", err)
	}
}
