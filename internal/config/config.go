// internal/config/config.go
//
// This package holds the display configuration for exported scripts: every
// heading, link caption, marker glyph and placeholder the renderer prints.
// The defaults live in defaultLabelsYAML; a project can overlay its own file.

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultLabelsYAML = `# script export labels
placeholders:
  unknown: "?"
  not_available: "N/A"
  untitled: 未命名剧本
  player_name: 角色%d
  no_materials: "*暂无物料数据*"

links:
  back: ← 返回目录
  dm_handbook: 📖 DM手册
  player_icon: 🎭
  materials: 🃏 游戏物料
  branch: 🔀 分支结构

index:
  generated_at: 生成时间
  version: 版本
  status: 状态
  model: AI模型
  config: 配置参数
  param_column: 参数
  value_column: 值
  player_count: 玩家人数
  duration: 游戏时长
  duration_unit: 小时
  game_type: 游戏类型
  ratio: 推理/还原
  era: 时代背景
  location: 地点设定
  theme: 主题风格
  files: 文件目录

dm:
  title: 📖 DM手册
  overview: 案件概述
  characters: 角色列表
  timeline: 时间线
  clues: 线索分发表
  round: 第%s轮
  round_guides: 轮次引导
  truth: 真相揭示
  endings: 结局
  condition: 条件
  decision_points: 分支决策点
  judging_rules: 判定规则
  players: 玩家手册

player:
  title: 🎭 玩家手册
  basics: 基本信息
  character_id: 角色ID
  primary_goal: 主要目标
  secondary_goals: 次要目标
  background: 背景故事
  relationships: 人物关系
  secrets: 秘密
  secret_marker: 🔒
  known_clues: 已知线索
  clue_marker: 🔍
  round_actions: 每轮行动指引
  other_players: 其他玩家手册

materials:
  title: 🃏 游戏物料
  associated_character: 关联角色
  other_type: other
  types:
    clue_card: 线索卡
    prop_card: 道具卡
    vote_card: 投票卡
    scene_card: 场景卡
    other: 其他

branch:
  title: 🔀 分支结构
  nodes: 节点
  edges: 连接
  endings: 结局节点
`

// Placeholders are printed when a value is missing from the document.
type Placeholders struct {
	Unknown      string `yaml:"unknown"`
	NotAvailable string `yaml:"not_available"`
	Untitled     string `yaml:"untitled"`
	// PlayerName is a format string receiving the 1-based player position.
	PlayerName  string `yaml:"player_name"`
	NoMaterials string `yaml:"no_materials"`
}

// LinkLabels caption the cross-artifact links.
type LinkLabels struct {
	Back       string `yaml:"back"`
	DMHandbook string `yaml:"dm_handbook"`
	PlayerIcon string `yaml:"player_icon"`
	Materials  string `yaml:"materials"`
	Branch     string `yaml:"branch"`
}

// IndexLabels are used by README.md.
type IndexLabels struct {
	GeneratedAt  string `yaml:"generated_at"`
	Version      string `yaml:"version"`
	Status       string `yaml:"status"`
	Model        string `yaml:"model"`
	Config       string `yaml:"config"`
	ParamColumn  string `yaml:"param_column"`
	ValueColumn  string `yaml:"value_column"`
	PlayerCount  string `yaml:"player_count"`
	Duration     string `yaml:"duration"`
	DurationUnit string `yaml:"duration_unit"`
	GameType     string `yaml:"game_type"`
	Ratio        string `yaml:"ratio"`
	Era          string `yaml:"era"`
	Location     string `yaml:"location"`
	Theme        string `yaml:"theme"`
	Files        string `yaml:"files"`
}

// DMLabels are used by dm-handbook.md.
type DMLabels struct {
	Title      string `yaml:"title"`
	Overview   string `yaml:"overview"`
	Characters string `yaml:"characters"`
	Timeline   string `yaml:"timeline"`
	Clues      string `yaml:"clues"`
	// Round is a format string receiving the round label.
	Round          string `yaml:"round"`
	RoundGuides    string `yaml:"round_guides"`
	Truth          string `yaml:"truth"`
	Endings        string `yaml:"endings"`
	Condition      string `yaml:"condition"`
	DecisionPoints string `yaml:"decision_points"`
	JudgingRules   string `yaml:"judging_rules"`
	Players        string `yaml:"players"`
}

// PlayerLabels are used by the per-player handbooks.
type PlayerLabels struct {
	Title          string `yaml:"title"`
	Basics         string `yaml:"basics"`
	CharacterID    string `yaml:"character_id"`
	PrimaryGoal    string `yaml:"primary_goal"`
	SecondaryGoals string `yaml:"secondary_goals"`
	Background     string `yaml:"background"`
	Relationships  string `yaml:"relationships"`
	Secrets        string `yaml:"secrets"`
	SecretMarker   string `yaml:"secret_marker"`
	KnownClues     string `yaml:"known_clues"`
	ClueMarker     string `yaml:"clue_marker"`
	RoundActions   string `yaml:"round_actions"`
	OtherPlayers   string `yaml:"other_players"`
}

// MaterialLabels are used by materials.md.
type MaterialLabels struct {
	Title               string `yaml:"title"`
	AssociatedCharacter string `yaml:"associated_character"`
	// OtherType is the bucket for materials without a usable type tag.
	OtherType string            `yaml:"other_type"`
	Types     map[string]string `yaml:"types"`
}

// BranchLabels are used by branch-structure.md.
type BranchLabels struct {
	Title   string `yaml:"title"`
	Nodes   string `yaml:"nodes"`
	Edges   string `yaml:"edges"`
	Endings string `yaml:"endings"`
}

// Labels is the complete, read-only display configuration handed to the
// renderer.
type Labels struct {
	Placeholders Placeholders   `yaml:"placeholders"`
	Links        LinkLabels     `yaml:"links"`
	Index        IndexLabels    `yaml:"index"`
	DM           DMLabels       `yaml:"dm"`
	Player       PlayerLabels   `yaml:"player"`
	Materials    MaterialLabels `yaml:"materials"`
	Branch       BranchLabels   `yaml:"branch"`
}

// Default returns the built-in labels.
func Default() Labels {
	labels, err := Parse([]byte(defaultLabelsYAML))
	if err != nil {
		// The built-in YAML is a compile-time constant covered by tests.
		panic(err)
	}
	return labels
}

// Parse decodes a labels payload on its own, without defaults.
func Parse(data []byte) (Labels, error) {
	var labels Labels
	if err := yaml.Unmarshal(data, &labels); err != nil {
		return Labels{}, fmt.Errorf("config: parse labels: %w", err)
	}
	labels.normalize()
	if err := labels.Validate(); err != nil {
		return Labels{}, fmt.Errorf("config: %w", err)
	}
	return labels, nil
}

// Load overlays the YAML file at path onto the default labels. Keys the file
// does not mention keep their default value.
func Load(path string) (Labels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Labels{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Overlay(Default(), data)
}

// Overlay decodes data on top of base.
func Overlay(base Labels, data []byte) (Labels, error) {
	merged := base.clone()
	if len(strings.TrimSpace(string(data))) == 0 {
		return merged, nil
	}
	if err := yaml.Unmarshal(data, &merged); err != nil {
		return Labels{}, fmt.Errorf("config: parse labels: %w", err)
	}
	merged.normalize()
	merged.applyDefaults(base)
	if err := merged.Validate(); err != nil {
		return Labels{}, fmt.Errorf("config: %w", err)
	}
	return merged, nil
}

// MaterialType returns the display name for a material type tag, falling
// back to the raw tag.
func (l Labels) MaterialType(tag string) string {
	if name, ok := l.Materials.Types[tag]; ok && name != "" {
		return name
	}
	return tag
}

// Validate ensures every label the renderer formats with is usable.
func (l Labels) Validate() error {
	required := map[string]string{
		"placeholders.unknown":     l.Placeholders.Unknown,
		"placeholders.player_name": l.Placeholders.PlayerName,
		"dm.round":                 l.DM.Round,
		"materials.other_type":     l.Materials.OtherType,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", key)
		}
	}
	if !strings.Contains(l.Placeholders.PlayerName, "%d") {
		return fmt.Errorf("placeholders.player_name must contain %%d")
	}
	if !strings.Contains(l.DM.Round, "%s") {
		return fmt.Errorf("dm.round must contain %%s")
	}
	return nil
}

func (l *Labels) normalize() {
	l.Materials.OtherType = strings.TrimSpace(l.Materials.OtherType)
	if l.Materials.Types == nil {
		l.Materials.Types = map[string]string{}
	}
}

// applyDefaults restores format strings an overlay blanked out.
func (l *Labels) applyDefaults(base Labels) {
	if strings.TrimSpace(l.Placeholders.Unknown) == "" {
		l.Placeholders.Unknown = base.Placeholders.Unknown
	}
	if strings.TrimSpace(l.Placeholders.PlayerName) == "" {
		l.Placeholders.PlayerName = base.Placeholders.PlayerName
	}
	if strings.TrimSpace(l.DM.Round) == "" {
		l.DM.Round = base.DM.Round
	}
	if l.Materials.OtherType == "" {
		l.Materials.OtherType = base.Materials.OtherType
	}
}

func (l Labels) clone() Labels {
	cloned := l
	cloned.Materials.Types = make(map[string]string, len(l.Materials.Types))
	for k, v := range l.Materials.Types {
		cloned.Materials.Types[k] = v
	}
	return cloned
}
