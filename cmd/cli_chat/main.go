package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/service"
)

// Offline coaching REPL: runs the rule-based pipeline against an in-memory
// transcript so the conversation flow can be exercised without a database or
// model credentials.
func main() {
	reader := bufio.NewReader(os.Stdin)

	analyzer := service.NewHistoryAnalyzer()
	var (
		scorer    service.EmotionScorer
		stages    service.StageClassifier
		phases    service.GrowSelector
		composer  service.ResponseComposer
		history   []domain.Message
		sessionID = uuid.NewString()
	)

	welcome := composer.Compose(domain.PhaseGoal, domain.StageContemplation, analyzer.Analyze(nil))
	history = appendMessage(history, sessionID, domain.SpeakerAI, welcome.AIResponse)
	printReply(welcome)

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("お疲れさまでした。")
			return
		}

		history = appendMessage(history, sessionID, domain.SpeakerUser, input)
		analysis := analyzer.Analyze(history)

		stage := stages.AssessStageWithHistory(input, analysis)
		phase := phases.SelectPhase(input, analysis)
		reply := composer.Compose(phase, stage, analysis)
		history = appendMessage(history, sessionID, domain.SpeakerAI, reply.AIResponse)

		_, dominant, confidence := scorer.AnalyzeEmotion(input)
		fmt.Printf("[stage=%s phase=%s emotion=%s conf=%.2f flow=%s]\n",
			reply.BehaviorStage, reply.GrowPhase, dominant, confidence, analysis.ConversationFlow)
		printReply(reply)
	}
}

func appendMessage(history []domain.Message, sessionID, speaker, content string) []domain.Message {
	return append(history, domain.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Speaker:   speaker,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
}

func printReply(reply domain.CoachReply) {
	fmt.Println(reply.AIResponse)
	for _, q := range reply.NextQuestions {
		fmt.Printf("  ・%s\n", q)
	}
}
