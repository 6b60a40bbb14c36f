package mirror

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	snap := Snapshot{
		SessionStart: "2026-08-31 10:00",
		History: []HistoryEntry{
			{Time: "10:00:01", Text: "hi", Emotion: EmotionNeutral, Impact: ImpactSteady},
		},
	}

	out := RenderReport(snap)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "SESSION REPORT - 2026-08-31 10:00", lines[0])
	assert.Equal(t, strings.Repeat("=", 50), lines[1])
	assert.Equal(t, "[10:00:01] hi", lines[2])
	assert.Contains(t, lines[3], "neutral")
	assert.Contains(t, lines[3], "Steady")
}

func TestRenderReportEmptyHistory(t *testing.T) {
	out := RenderReport(Snapshot{SessionStart: "2026-08-31 10:00"})
	assert.Contains(t, out, "SESSION REPORT")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestRenderReportOrderAsStored(t *testing.T) {
	snap := Snapshot{
		SessionStart: "2026-08-31 10:00",
		History: []HistoryEntry{
			{Time: "10:00:05", Text: "second", Emotion: EmotionHappy, Impact: ImpactHighResonance},
			{Time: "10:00:01", Text: "first", Emotion: EmotionNeutral, Impact: ImpactSteady},
		},
	}
	out := RenderReport(snap)
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}
