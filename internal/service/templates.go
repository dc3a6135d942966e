package service

import "evolve-coach/internal/domain"

// Canned response table: one string per (GROW phase, behavior stage). Used
// whenever the analysis carries no usable context.
var phaseStageResponses = map[domain.GrowPhase]map[domain.BehaviorStage]string{
	domain.PhaseGoal: {
		domain.StagePrecontemplation: "まずは、なぜその目標が大切なのか、一緒に考えてみませんか？",
		domain.StageContemplation:    "素晴らしい目標ですね。その目標があなたにとってどんな意味を持つのか、もう少し詳しく聞かせてください。",
		domain.StagePreparation:      "その目標に向けて、具体的な計画を立てていきましょう。",
		domain.StageAction:           "目標に向けて行動されているのですね。現在の進捗はいかがですか？",
		domain.StageMaintenance:      "継続されているのは素晴らしいことです。さらに発展させる方法を考えてみましょう。",
	},
	domain.PhaseReality: {
		domain.StagePrecontemplation: "現状について、客観的に見つめてみることから始めましょう。",
		domain.StageContemplation:    "現在の状況を整理することで、次のステップが見えてくるかもしれません。",
		domain.StagePreparation:      "現状を踏まえて、実現可能な計画を立てていきましょう。",
		domain.StageAction:           "現在の取り組みの効果はいかがですか？",
		domain.StageMaintenance:      "継続できている要因は何だと思いますか？",
	},
	domain.PhaseOptions: {
		domain.StagePrecontemplation: "様々な選択肢があることを知ることから始めてみませんか？",
		domain.StageContemplation:    "いくつかの選択肢を比較検討してみましょう。",
		domain.StagePreparation:      "あなたに最も適した方法を選んでいきましょう。",
		domain.StageAction:           "現在の方法以外にも、試してみたい方法はありますか？",
		domain.StageMaintenance:      "新しいアプローチを取り入れることで、さらに効果を高められるかもしれません。",
	},
	domain.PhaseWill: {
		domain.StagePrecontemplation: "小さな一歩から始めてみることを考えてみませんか？",
		domain.StageContemplation:    "実際に行動に移すために、何が必要だと思いますか？",
		domain.StagePreparation:      "素晴らしい決意ですね。具体的な行動計画を立てましょう。",
		domain.StageAction:           "その意欲、とても素晴らしいです。継続のコツを一緒に考えましょう。",
		domain.StageMaintenance:      "継続する意志の強さが感じられます。さらなる成長を目指しましょう。",
	},
}

// Generic follow-up questions per GROW phase.
var phaseQuestions = map[domain.GrowPhase][]string{
	domain.PhaseGoal: {
		"あなたが本当に達成したいことは何ですか？",
		"その目標が実現したとき、どんな気持ちになりますか？",
		"具体的にはどのような状態を目指していますか？",
	},
	domain.PhaseReality: {
		"現在の状況を詳しく教えてください",
		"これまでにどんな取り組みをされましたか？",
		"今、一番の課題は何だと感じていますか？",
	},
	domain.PhaseOptions: {
		"どのような方法が考えられますか？",
		"過去に成功した経験から学べることはありますか？",
		"他にどんな選択肢がありそうですか？",
	},
	domain.PhaseWill: {
		"具体的に何から始めますか？",
		"いつまでに実行しますか？",
		"どうやって進捗を確認しますか？",
	},
}

const welcomeMessage = `こんにちは！EVOLVEへようこそ。私はあなたの成長をサポートするAIコーチです。

今日はどのようなことについてお話ししましょうか？あなたの目標や現在の状況、お悩みなど、何でもお聞かせください。

一緒に、あなたらしい成長の道筋を見つけていきましょう。`

// Fixed strings for the adaptive fallback path.
const (
	adaptiveSadnessResponse = "お辛い気持ちを話してくださってありがとうございます。焦らなくて大丈夫です。今感じていることを、もう少し聞かせていただけますか？"
	adaptiveJoyResponse     = "前向きな気持ちが伝わってきます。その調子です！この良い流れをどう活かしていきましょうか？"
)

var adaptiveFlowResponses = map[string]string{
	domain.FlowInitial:        "お話しいただきありがとうございます。まずはあなたのことをもう少し教えてください。",
	domain.FlowExploration:    "なるほど、少しずつ状況が見えてきました。もう少し深く掘り下げてみましょうか。",
	domain.FlowDeepening:      "ここまでの対話で、大切なテーマが見えてきたように思います。一番気になっている点はどこですか？",
	domain.FlowActionPlanning: "十分に整理できてきましたね。そろそろ具体的な行動に落とし込んでいきましょう。",
}
