package domain

// BehaviorStage follows the Transtheoretical Model. The classifier may pick
// any stage each turn; no monotonic transition is enforced.
type BehaviorStage string

const (
	StagePrecontemplation BehaviorStage = "precontemplation"
	StageContemplation    BehaviorStage = "contemplation"
	StagePreparation      BehaviorStage = "preparation"
	StageAction           BehaviorStage = "action"
	StageMaintenance      BehaviorStage = "maintenance"
)

// BehaviorStages lists the five stages in their ordinal progression.
var BehaviorStages = []BehaviorStage{
	StagePrecontemplation,
	StageContemplation,
	StagePreparation,
	StageAction,
	StageMaintenance,
}

func (s BehaviorStage) Valid() bool {
	switch s {
	case StagePrecontemplation, StageContemplation, StagePreparation, StageAction, StageMaintenance:
		return true
	}
	return false
}

// GrowPhase is one of the four GROW-model dialogue phases.
type GrowPhase string

const (
	PhaseGoal    GrowPhase = "goal"
	PhaseReality GrowPhase = "reality"
	PhaseOptions GrowPhase = "options"
	PhaseWill    GrowPhase = "will"
)

// Next returns the fixed cyclic successor: Goal→Reality→Options→Will→Goal.
func (p GrowPhase) Next() GrowPhase {
	switch p {
	case PhaseGoal:
		return PhaseReality
	case PhaseReality:
		return PhaseOptions
	case PhaseOptions:
		return PhaseWill
	default:
		return PhaseGoal
	}
}

func (p GrowPhase) Valid() bool {
	switch p {
	case PhaseGoal, PhaseReality, PhaseOptions, PhaseWill:
		return true
	}
	return false
}
