package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"evolve-coach/internal/domain"
	"evolve-coach/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

type scenario struct {
	name          string
	input         string
	expectedStage domain.BehaviorStage
	expectedPhase domain.GrowPhase
}

// Smoke-checks the classification pipeline against scripted turns. Useful
// after touching the keyword tables: a regression shows up as a red line
// instead of a failing user conversation.
var scenarios = []scenario{
	{
		name:          "explicit goal talk selects goal phase",
		input:         "私の目標は健康的な生活を達成したいことです",
		expectedStage: domain.StageContemplation,
		expectedPhase: domain.PhaseGoal,
	},
	{
		name:          "current situation talk selects reality phase",
		input:         "現状はあまり良くないです",
		expectedStage: domain.StageContemplation,
		expectedPhase: domain.PhaseReality,
	},
	{
		name:          "asking for methods selects options phase",
		input:         "どんな方法があるか知りたいです",
		expectedStage: domain.StageContemplation,
		expectedPhase: domain.PhaseOptions,
	},
	{
		name:          "planned commitment selects will phase",
		input:         "計画を立てたので、明日から必ずやります",
		expectedStage: domain.StagePreparation,
		expectedPhase: domain.PhaseWill,
	},
	{
		name:          "ongoing habit keeps maintenance stage",
		input:         "毎日の運動を続けている",
		expectedStage: domain.StageMaintenance,
		expectedPhase: domain.PhaseGoal,
	},
	{
		name:          "resistance maps to precontemplation",
		input:         "別に変わりたくない",
		expectedStage: domain.StagePrecontemplation,
		expectedPhase: domain.PhaseGoal,
	},
}

func main() {
	analyzer := service.NewHistoryAnalyzer()
	var (
		stages   service.StageClassifier
		phases   service.GrowSelector
		composer service.ResponseComposer
	)

	failures := 0
	for _, sc := range scenarios {
		history := []domain.Message{{
			ID:        uuid.NewString(),
			SessionID: "check",
			Speaker:   domain.SpeakerUser,
			Content:   sc.input,
			CreatedAt: time.Now().UTC(),
		}}
		analysis := analyzer.Analyze(history)

		stage := stages.AssessStageWithHistory(sc.input, analysis)
		phase := phases.SelectPhase(sc.input, analysis)
		reply := composer.Compose(phase, stage, analysis)

		ok := stage == sc.expectedStage && phase == sc.expectedPhase && reply.AIResponse != ""
		mark := colorGreen + "PASS" + colorReset
		if !ok {
			mark = colorRed + "FAIL" + colorReset
			failures++
		}
		fmt.Printf("%s %s\n", mark, sc.name)
		fmt.Printf("  %sinput%s  %s\n", colorCyan, colorReset, sc.input)
		fmt.Printf("  stage=%s (want %s) phase=%s (want %s)\n", stage, sc.expectedStage, phase, sc.expectedPhase)
	}

	if failures > 0 {
		fmt.Printf("\n%d scenario(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nall scenarios passed")
}
