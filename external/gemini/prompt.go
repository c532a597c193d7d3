package gemini

import (
	"strconv"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

const (
	noOddsLine = "No betting odds available."
	noNewsLine = "  (no news available)"
)

// BuildPrompt renders the analyst prompt for one match.
func BuildPrompt(input prediction.Input) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	line := func(s string) {
		_, _ = buf.WriteString(s)
		_ = buf.WriteByte('\n')
	}

	line("You are an expert football analyst with deep knowledge of team form, tactics, and player availability.")
	line("")
	line("Match: " + input.HomeTeam + " (home) vs " + input.AwayTeam + " (away)")
	line(oddsLine(input.Odds))
	line("")
	line("Context (news, injuries, suspensions, lineups):")
	if len(input.RecentNews) == 0 {
		line(noNewsLine)
	}
	for i, item := range input.RecentNews {
		line("  [" + strconv.Itoa(i+1) + "] " + item)
	}
	line("")
	line("Based on all available information, produce a structured JSON prediction with:")
	line(`- winner: the predicted winner's name exactly as provided, or the string "Draw"`)
	line("- predictedScore: your best approximate final score as integers (home goals, away goals)")
	line("- confidence: your overall confidence level (low | medium | high)")
	line("- reasoning: 2-3 sentences explaining your prediction")
	_, _ = buf.WriteString("- warnings: list of notable risk factors e.g. key injuries, suspensions (empty array if none)")

	return buf.String()
}

func oddsLine(prices *odds.ThreeWay) string {
	if prices == nil || (prices.Home == nil && prices.Draw == nil && prices.Away == nil) {
		return noOddsLine
	}
	return "Betting odds - Home win: " + formatPrice(prices.Home) +
		", Draw: " + formatPrice(prices.Draw) +
		", Away win: " + formatPrice(prices.Away) + "."
}

func formatPrice(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
