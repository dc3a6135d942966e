package service

import (
	"regexp"

	"evolve-coach/internal/domain"
)

const (
	maxExtractedGoals      = 5
	maxExtractedChallenges = 3
)

var goalPatterns = compileGoalPatterns()

func compileGoalPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(goalPatternSources))
	for _, src := range goalPatternSources {
		patterns = append(patterns, regexp.MustCompile(src))
	}
	return patterns
}

// Extraction is what the extractor pulls out of a user-message sequence.
type Extraction struct {
	Topics     []string
	Goals      []string
	Challenges []string
}

// Extractor derives topics, goal phrases and challenge statements from the
// user side of a conversation.
type Extractor struct{}

// Extract scans the user messages in order. Topics are a set (first-seen
// order, each at most once); goals keep message order and cap at 5;
// challenges record the entire message content and cap at 3.
func (Extractor) Extract(userMessages []domain.Message) Extraction {
	var ex Extraction

	seenTopics := make(map[string]bool)
	for _, topic := range topicOrder {
		for _, msg := range userMessages {
			if seenTopics[topic] {
				break
			}
			if containsAnyKeyword(msg.Content, topicTriggers[topic]) {
				seenTopics[topic] = true
				ex.Topics = append(ex.Topics, topic)
			}
		}
	}

	for _, msg := range userMessages {
		if len(ex.Goals) >= maxExtractedGoals {
			break
		}
		for _, pattern := range goalPatterns {
			for _, m := range pattern.FindAllStringSubmatch(msg.Content, -1) {
				if len(m) < 2 || m[1] == "" {
					continue
				}
				ex.Goals = append(ex.Goals, m[1])
				if len(ex.Goals) >= maxExtractedGoals {
					break
				}
			}
			if len(ex.Goals) >= maxExtractedGoals {
				break
			}
		}
	}

	for _, msg := range userMessages {
		if len(ex.Challenges) >= maxExtractedChallenges {
			break
		}
		if containsAnyKeyword(msg.Content, challengeKeywords) {
			ex.Challenges = append(ex.Challenges, msg.Content)
		}
	}

	return ex
}
