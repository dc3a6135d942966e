package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/llm"
)

// AIResponder produces coach replies with the help of a language model. The
// coaching pipeline treats it as optional and falls back to the rule-based
// composer when it is unavailable or fails.
type AIResponder interface {
	AssessStage(ctx context.Context, userInput string) (domain.BehaviorStage, error)
	GenerateResponse(ctx context.Context, userInput string, stage domain.BehaviorStage, analysis domain.ConversationAnalysis) (domain.CoachReply, error)
}

var ErrAIUnavailable = errors.New("ai responder unavailable")

// LLMResponder implements AIResponder against an llm.Client.
type LLMResponder struct {
	client llm.Client
	logger *zap.Logger
}

func NewLLMResponder(client llm.Client, logger *zap.Logger) *LLMResponder {
	return &LLMResponder{client: client, logger: logger}
}

const coachSystemPromptFormat = `あなたは「EVOLVE」のAIコーチです。ユーザーの個人的な成長と目標達成をサポートする専門的なコーチとして振る舞ってください。

## あなたの役割
- 共感的で支援的なコーチング
- GROWモデル（Goal, Reality, Options, Will）に基づく質問
- 行動変容理論を活用した段階的サポート
- ユーザーの感情に寄り添った応答

## 現在のユーザー状況
- 行動変容ステージ: %s
- 設定済み目標数: %d

## 応答ガイドライン
1. 温かく共感的な口調を使用
2. 具体的で実行可能なアドバイスを提供
3. ユーザーの自主性を尊重
4. 小さな成功を認めて励ます
5. 必要に応じて適切な質問で深掘り

## 応答形式
応答は以下の形式で構造化してください：
CONTENT: [メインの応答内容]
QUESTIONS: [次の質問候補（3つまで、|で区切り）]
TONE: [emotional_tone: supportive/encouraging/empathetic/motivational]
CONFIDENCE: [0.0-1.0の信頼度]

日本語で応答してください。`

const stageAssessmentPrompt = `ユーザーの発言から行動変容ステージを判定してください。
以下のいずれかを返してください：
- precontemplation: 変化を考えていない
- contemplation: 変化を考えている
- preparation: 変化の準備をしている
- action: 行動を開始している
- maintenance: 行動を維持している

ステージ名のみを返してください。`

func (r *LLMResponder) AssessStage(ctx context.Context, userInput string) (domain.BehaviorStage, error) {
	if r == nil || r.client == nil {
		return "", ErrAIUnavailable
	}
	raw, err := r.client.GenerateChat(ctx, []llm.ChatMessage{
		{Role: "system", Content: stageAssessmentPrompt},
		{Role: "user", Content: userInput},
	})
	if err != nil {
		return "", fmt.Errorf("assess stage: %w", err)
	}
	stage := domain.BehaviorStage(strings.TrimSpace(strings.ToLower(raw)))
	if !stage.Valid() {
		return domain.StageContemplation, nil
	}
	return stage, nil
}

func (r *LLMResponder) GenerateResponse(ctx context.Context, userInput string, stage domain.BehaviorStage, analysis domain.ConversationAnalysis) (domain.CoachReply, error) {
	if r == nil || r.client == nil {
		return domain.CoachReply{}, ErrAIUnavailable
	}
	system := fmt.Sprintf(coachSystemPromptFormat, stage, len(analysis.UserGoals))
	if len(analysis.PastInsights) > 0 {
		var b strings.Builder
		b.WriteString("\n\n## 過去のセッションからの関連する洞察\n")
		for _, insight := range analysis.PastInsights {
			fmt.Fprintf(&b, "- %s\n", insight.Content)
		}
		system += b.String()
	}

	messages := make([]llm.ChatMessage, 0, len(analysis.RecentContext)+2)
	messages = append(messages, llm.ChatMessage{Role: "system", Content: system})
	for _, m := range analysis.RecentContext {
		role := "assistant"
		if m.Speaker == domain.SpeakerUser {
			role = "user"
		}
		messages = append(messages, llm.ChatMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, llm.ChatMessage{Role: "user", Content: userInput})

	raw, err := r.client.GenerateChat(ctx, messages)
	if err != nil {
		return domain.CoachReply{}, fmt.Errorf("generate response: %w", err)
	}
	reply := parseAIResponse(raw)
	reply.BehaviorStage = stage
	if r.logger != nil {
		r.logger.Debug("ai reply parsed",
			zap.Float64("confidence", reply.Confidence),
			zap.Int("questions", len(reply.NextQuestions)),
		)
	}
	return reply, nil
}
