package service

import "evolve-coach/internal/domain"

// Keyword tables shared by the classifiers and the extractor. Matching is
// plain substring containment over the raw message text; the lexicons carry
// surface forms, not lemmas.

var emotionLexicon = map[string][]string{
	domain.EmotionJoy:     {"嬉しい", "楽しい", "幸せ", "良い", "素晴らしい"},
	domain.EmotionSadness: {"悲しい", "辛い", "落ち込む", "憂鬱"},
	domain.EmotionAnger:   {"怒り", "イライラ", "腹立つ", "ムカつく"},
	domain.EmotionFear:    {"不安", "心配", "怖い", "恐れ"},
}

// emotionIncrement is added per matched lexicon term; repeated matches across
// terms accumulate without clamping.
const emotionIncrement = 0.3

var topicTriggers = map[string][]string{
	"career":        {"仕事", "キャリア", "転職", "昇進", "職場"},
	"health":        {"健康", "運動", "ダイエット", "睡眠", "食事"},
	"relationships": {"人間関係", "家族", "友達", "恋愛", "パートナー"},
	"learning":      {"学習", "勉強", "スキル", "資格", "英語"},
	"lifestyle":     {"生活", "習慣", "趣味", "時間の使い方"},
}

// topicOrder fixes the iteration order so extracted topic sets are stable.
var topicOrder = []string{"career", "health", "relationships", "learning", "lifestyle"}

// goalPatterns capture desire/goal phrasings. Each regexp's first capture
// group is the goal text. The first pattern covers the 〜したい / 〜になりたい
// desire forms in one sweep since both end in たい.
var goalPatternSources = []string{
	`([^、。！？\s]+たい)`,
	`目標は([^、。！？]+)`,
	`達成したいのは([^、。！？]+)`,
}

var challengeKeywords = []string{
	"困っている", "悩んでいる", "問題", "課題", "うまくいかない", "難しい",
}

// Behavior-stage cascade, evaluated in order; first match wins.
var stageKeywords = []struct {
	Stage    domain.BehaviorStage
	Keywords []string
}{
	{domain.StagePrecontemplation, []string{"変わりたくない", "必要ない"}},
	{domain.StageContemplation, []string{"考えている", "悩んでいる"}},
	{domain.StagePreparation, []string{"準備", "計画"}},
	{domain.StageAction, []string{"始めた", "実行中"}},
	{domain.StageMaintenance, []string{"続けている", "習慣"}},
}

// GROW-phase cascade, shared by the per-turn selector and the history scanner.
var growKeywords = []struct {
	Phase    domain.GrowPhase
	Keywords []string
}{
	{domain.PhaseGoal, []string{"目標", "ゴール", "達成したい"}},
	{domain.PhaseReality, []string{"現状", "今", "実際"}},
	{domain.PhaseOptions, []string{"方法", "どうすれば", "やり方"}},
	{domain.PhaseWill, []string{"やります", "実行", "始める"}},
}
