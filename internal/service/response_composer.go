package service

import (
	"fmt"

	"evolve-coach/internal/domain"
)

const maxNextQuestions = 3

// Confidence levels reported by each deterministic path. These grade how
// specific the chosen template was, they are not probabilities.
const (
	welcomeConfidence  = 0.8
	contextConfidence  = 0.75
	genericConfidence  = 0.65
	adaptiveConfidence = 0.5
)

// ResponseComposer turns (phase, stage, analysis) into the outgoing reply.
// Pure: composing twice from identical inputs yields identical output.
type ResponseComposer struct{}

// Compose builds the reply for one turn. An empty session gets the fixed
// welcome; otherwise the GROW phase picks a template function that prefers
// context from the analysis and falls back to the stage-keyed canned table.
func (c ResponseComposer) Compose(phase domain.GrowPhase, stage domain.BehaviorStage, analysis domain.ConversationAnalysis) domain.CoachReply {
	if analysis.MessageCount == 0 {
		return domain.CoachReply{
			AIResponse:    welcomeMessage,
			NextQuestions: append([]string(nil), phaseQuestions[domain.PhaseGoal]...),
			EmotionalTone: domain.ToneSupportive,
			Confidence:    welcomeConfidence,
			BehaviorStage: stage,
			GrowPhase:     domain.PhaseGoal,
		}
	}

	if !phase.Valid() {
		return c.composeAdaptive(stage, analysis)
	}

	text, contextual := c.phaseResponse(phase, stage, analysis)
	confidence := genericConfidence
	if contextual {
		confidence = contextConfidence
	}

	return domain.CoachReply{
		AIResponse:    text,
		NextQuestions: c.nextQuestions(phase, analysis),
		EmotionalTone: phaseTone(phase),
		Confidence:    confidence,
		BehaviorStage: stage,
		GrowPhase:     phase,
	}
}

// phaseResponse reports whether the returned text used analysis context.
func (ResponseComposer) phaseResponse(phase domain.GrowPhase, stage domain.BehaviorStage, analysis domain.ConversationAnalysis) (string, bool) {
	switch phase {
	case domain.PhaseGoal:
		if len(analysis.UserGoals) > 0 {
			return fmt.Sprintf("「%s」という目標をお持ちなのですね。%s", analysis.UserGoals[0], phaseStageResponses[phase][stage]), true
		}
	case domain.PhaseReality:
		if len(analysis.Challenges) > 0 {
			return fmt.Sprintf("「%s」とのこと、状況を共有してくださってありがとうございます。%s", analysis.Challenges[0], phaseStageResponses[phase][stage]), true
		}
	case domain.PhaseOptions:
		if len(analysis.Topics) > 0 {
			return fmt.Sprintf("%sに関するテーマですね。%s", topicLabel(analysis.Topics[0]), phaseStageResponses[phase][stage]), true
		}
	case domain.PhaseWill:
		if len(analysis.UserGoals) > 0 {
			return fmt.Sprintf("「%s」の実現に向けて動き出す段階ですね。%s", analysis.UserGoals[0], phaseStageResponses[phase][stage]), true
		}
	}
	return phaseStageResponses[phase][stage], false
}

// composeAdaptive handles an unrecognized phase by reading the latest emotion
// first and the conversation-flow bucket second.
func (ResponseComposer) composeAdaptive(stage domain.BehaviorStage, analysis domain.ConversationAnalysis) domain.CoachReply {
	text := adaptiveFlowResponses[analysis.ConversationFlow]
	tone := domain.ToneSupportive

	if last := analysis.LastEmotion(); last != nil {
		switch last.Dominant() {
		case domain.EmotionSadness:
			text = adaptiveSadnessResponse
			tone = domain.ToneEmpathetic
		case domain.EmotionJoy:
			text = adaptiveJoyResponse
			tone = domain.ToneEncouraging
		}
	}

	return domain.CoachReply{
		AIResponse:    text,
		NextQuestions: append([]string(nil), phaseQuestions[domain.PhaseGoal]...),
		EmotionalTone: tone,
		Confidence:    adaptiveConfidence,
		BehaviorStage: stage,
		GrowPhase:     domain.PhaseGoal,
	}
}

// nextQuestions prefers phrasing that references the user's recorded goal and
// tops up from the generic table, capped at three.
func (ResponseComposer) nextQuestions(phase domain.GrowPhase, analysis domain.ConversationAnalysis) []string {
	var questions []string

	if len(analysis.UserGoals) > 0 {
		goal := analysis.UserGoals[0]
		switch phase {
		case domain.PhaseGoal:
			questions = append(questions, fmt.Sprintf("「%s」が実現したとき、何が一番変わっていると思いますか？", goal))
		case domain.PhaseReality:
			questions = append(questions, fmt.Sprintf("「%s」に対して、今はどのあたりまで来ていますか？", goal))
		case domain.PhaseOptions:
			questions = append(questions, fmt.Sprintf("「%s」に近づくために、どんなやり方が考えられますか？", goal))
		case domain.PhaseWill:
			questions = append(questions, fmt.Sprintf("「%s」のために、今週できる最初の一歩は何ですか？", goal))
		}
	}

	for _, q := range phaseQuestions[phase] {
		if len(questions) >= maxNextQuestions {
			break
		}
		questions = append(questions, q)
	}
	return questions
}

func phaseTone(phase domain.GrowPhase) string {
	switch phase {
	case domain.PhaseWill:
		return domain.ToneMotivational
	case domain.PhaseOptions:
		return domain.ToneEncouraging
	default:
		return domain.ToneSupportive
	}
}

func topicLabel(topic string) string {
	switch topic {
	case "career":
		return "仕事やキャリア"
	case "health":
		return "健康"
	case "relationships":
		return "人間関係"
	case "learning":
		return "学習"
	case "lifestyle":
		return "生活習慣"
	default:
		return topic
	}
}
