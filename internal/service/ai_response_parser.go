package service

import (
	"regexp"
	"strconv"
	"strings"

	"evolve-coach/internal/domain"
)

// The model is instructed to answer in a labeled CONTENT/QUESTIONS/TONE/
// CONFIDENCE layout. Parsing is lenient: missing sections fall back to
// defaults and a completely unstructured answer becomes the content as-is.
var (
	aiContentRe    = regexp.MustCompile(`(?s)CONTENT:\s*(.*?)(?:QUESTIONS:|TONE:|CONFIDENCE:|$)`)
	aiQuestionsRe  = regexp.MustCompile(`(?s)QUESTIONS:\s*(.*?)(?:TONE:|CONFIDENCE:|$)`)
	aiToneRe       = regexp.MustCompile(`(?s)TONE:\s*(.*?)(?:CONFIDENCE:|$)`)
	aiConfidenceRe = regexp.MustCompile(`CONFIDENCE:\s*([0-9.]+)`)
)

const defaultAIConfidence = 0.8

func parseAIResponse(raw string) domain.CoachReply {
	reply := domain.CoachReply{
		AIResponse:    strings.TrimSpace(raw),
		NextQuestions: []string{},
		EmotionalTone: domain.ToneSupportive,
		Confidence:    defaultAIConfidence,
	}

	if m := aiContentRe.FindStringSubmatch(raw); m != nil {
		if content := strings.TrimSpace(m[1]); content != "" {
			reply.AIResponse = content
		}
	}
	if m := aiQuestionsRe.FindStringSubmatch(raw); m != nil {
		for _, q := range strings.Split(m[1], "|") {
			q = strings.TrimSpace(q)
			if q == "" {
				continue
			}
			reply.NextQuestions = append(reply.NextQuestions, q)
			if len(reply.NextQuestions) == maxNextQuestions {
				break
			}
		}
	}
	if m := aiToneRe.FindStringSubmatch(raw); m != nil {
		if tone := strings.TrimSpace(m[1]); tone != "" {
			reply.EmotionalTone = tone
		}
	}
	if m := aiConfidenceRe.FindStringSubmatch(raw); m != nil {
		if conf, err := strconv.ParseFloat(m[1], 64); err == nil && conf >= 0 && conf <= 1 {
			reply.Confidence = conf
		}
	}
	return reply
}
