package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"grid-scout/internal/config"
	"grid-scout/internal/domain"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

const narrativeSystemPrompt = `You are a lead esports strategic analyst. You are given aggregated
team and player statistics from a scouting pipeline.

Rules:
- Ground every claim in the data provided. Never invent statistics.
- Cite specific numbers when making a claim.
- Clinical tone, markdown bullets, no headers.
- If the data is too thin to support a conclusion, say so explicitly.`

// NarrativeService turns a stats bundle into scouting prose via the
// Anthropic API. The pipeline does not depend on it: when no key is
// configured or a call fails, fixed fallback text comes back instead.
type NarrativeService struct {
	client  anthropic.Client
	model   string
	enabled bool
	logger  zerolog.Logger
}

func NewNarrativeService(cfg *config.Config, logger zerolog.Logger) *NarrativeService {
	s := &NarrativeService{model: cfg.AnthropicModel, logger: logger}
	if cfg.AnthropicAPIKey != "" {
		s.client = anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		s.enabled = true
	}
	return s
}

func (s *NarrativeService) Enabled() bool { return s.enabled }

// ScoutingReport produces the playbook sections plus short structured intel
// for one team. Long tactical text travels in [[TAG]] blocks (resistant to
// formatting drift); the short roster intel travels as strict JSON.
func (s *NarrativeService) ScoutingReport(ctx context.Context, teamName string, bundle *domain.TeamStatsBundle) *domain.Narrative {
	if !s.enabled || len(bundle.Series) == 0 {
		return fallbackNarrative()
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fallbackNarrative()
	}

	narrative := fallbackNarrative()

	playbookPrompt := fmt.Sprintf(`Produce a clinical tactical playbook for %s.
DATA: %s

Wrap your analysis in these SPECIFIC TAGS:
[[VULNERABILITY]]
Markdown text about losses and side weaknesses.
[[/VULNERABILITY]]

[[THREATS]]
Markdown text about star players and failure points.
[[/THREATS]]

[[STRATEGY]]
3 SPECIFIC actionable directives.
[[/STRATEGY]]

[[PLAN]]
Phase-by-phase execution timeline.
[[/PLAN]]

STRICT RULES:
- Use bullet points.
- NO headers inside the tags.
- NO JSON. Just tags and markdown.`, teamName, data)

	if text, err := s.complete(ctx, playbookPrompt); err != nil {
		s.logger.Warn().Err(err).Str("team", teamName).Msg("playbook generation failed")
	} else {
		narrative.Playbook = domain.Playbook{
			Vulnerability:  extractSection(text, "VULNERABILITY"),
			RosterThreats:  extractSection(text, "THREATS"),
			KillerStrategy: extractSection(text, "STRATEGY"),
			ExecutionPlan:  extractSection(text, "PLAN"),
		}
	}

	intelPrompt := fmt.Sprintf(`Extract scouting metadata for %s based on this data: %s

Return ONLY a valid JSON object:
{
  "roster_analysis": [
    {
      "name": "PLAYER_NAME",
      "category": "Killer" | "Attacker" | "Defender",
      "strength": "Brief strength",
      "weakness": "Brief weakness"
    }
  ],
  "winning_trends": "1-sentence summary of why they win.",
  "counter_strategy": "1-sentence actionable strategy to win against them."
}
IMPORTANT: Raw JSON only. No text.`, teamName, data)

	if text, err := s.complete(ctx, intelPrompt); err != nil {
		s.logger.Warn().Err(err).Str("team", teamName).Msg("intel generation failed")
	} else {
		roster, trends, counter := parseIntel(text)
		narrative.Roster = roster
		if trends != "" {
			narrative.WinningTrends = trends
		}
		if counter != "" {
			narrative.CounterStrategy = counter
		}
	}

	return narrative
}

// ComparisonReport produces the sectional matchup verdict for two teams.
func (s *NarrativeService) ComparisonReport(ctx context.Context, nameA string, bundleA *domain.TeamStatsBundle, nameB string, bundleB *domain.TeamStatsBundle) *domain.ComparisonNarrative {
	fallback := &domain.ComparisonNarrative{
		Verdict:         "Narrative generation unavailable.",
		PlayerWar:       "N/A",
		TacticalGap:     "N/A",
		PriorityTargets: "N/A",
		KillStrategy:    "N/A",
	}
	if !s.enabled {
		return fallback
	}

	data, err := json.MarshalIndent(map[string]any{
		"team_a": map[string]any{"name": nameA, "stats": bundleA},
		"team_b": map[string]any{"name": nameB, "stats": bundleB},
	}, "", "  ")
	if err != nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Compare %s vs %s.
DATA: %s

Return a sectional analysis using these EXACT tags:

[[MATCHUP_VERDICT]]
A clinical decision on who wins and %% confidence. 1 sentence reason.
[[/MATCHUP_VERDICT]]

[[PLAYER_WAR]]
Identify the best player on both sides and the duel that defines the game.
[[/PLAYER_WAR]]

[[TACTICAL_GAP]]
Identify one specific gap where one team beats the other.
[[/TACTICAL_GAP]]

[[PRIORITY_TARGETS]]
Exactly two lines, one per team's perspective:
ATTACKING_TEAM | TARGET_PLAYER | STRATEGIC_REASON
[[/PRIORITY_TARGETS]]

[[KILL_STRATEGY]]
A 2-point actionable strategy for BOTH teams to win this match.
[[/KILL_STRATEGY]]`, nameA, nameB, data)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		s.logger.Warn().Err(err).Msg("comparison narrative failed")
		return fallback
	}
	return &domain.ComparisonNarrative{
		Verdict:         extractSection(text, "MATCHUP_VERDICT"),
		PlayerWar:       extractSection(text, "PLAYER_WAR"),
		TacticalGap:     extractSection(text, "TACTICAL_GAP"),
		PriorityTargets: extractSection(text, "PRIORITY_TARGETS"),
		KillStrategy:    extractSection(text, "KILL_STRATEGY"),
	}
}

func (s *NarrativeService) complete(ctx context.Context, prompt string) (string, error) {
	msg, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: narrativeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}

// extractSection pulls the text between [[TAG]] and [[/TAG]].
func extractSection(text, tag string) string {
	re := regexp.MustCompile(`(?is)\[\[` + tag + `\]\](.*?)\[\[/` + tag + `\]\]`)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "No " + tag + " data available."
	}
	return strings.TrimSpace(m[1])
}

type intelPayload struct {
	RosterAnalysis  []domain.RosterNote `json:"roster_analysis"`
	WinningTrends   string              `json:"winning_trends"`
	CounterStrategy string              `json:"counter_strategy"`
}

// parseIntel tolerates code fences and stray prose around the JSON object.
func parseIntel(text string) ([]domain.RosterNote, string, string) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	if start := strings.Index(clean, "{"); start >= 0 {
		if end := strings.LastIndex(clean, "}"); end > start {
			clean = clean[start : end+1]
		}
	}

	var payload intelPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, "", ""
	}
	return payload.RosterAnalysis, payload.WinningTrends, payload.CounterStrategy
}

func fallbackNarrative() *domain.Narrative {
	return &domain.Narrative{
		Playbook: domain.Playbook{
			Vulnerability:  "Insufficient signal captured.",
			RosterThreats:  "Roster scanning incomplete.",
			KillerStrategy: "Maintain standard play.",
			ExecutionPlan:  "Gather more intelligence.",
		},
		Roster:          []domain.RosterNote{},
		WinningTrends:   "Patterns inconsistent.",
		CounterStrategy: "Awaiting more data.",
	}
}
