package forecast

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/giuliopb/surf-bot-whatsapp/internal/models"
)

// User-facing reply texts. Every failure the service can hit maps to
// exactly one of these; nothing upstream-shaped leaks to the user.
const (
	MsgUnknownSpot     = "Praia não encontrada. Envie por ex: surf balneario"
	MsgPrimaryFailed   = "Não consegui obter a previsão no momento 😞"
	MsgFallbackNetwork = "A previsão alternativa também está fora do ar 😞"
	MsgFallbackStatus  = "A fonte alternativa não respondeu como esperado 😞"
	MsgFallbackEmpty   = "Dados insuficientes para gerar a previsão no momento 😞"

	msgNoDataForDay = "sem dados suficientes 😕"
)

func renderDaily(spot models.Spot, s models.DailySummary, now time.Time) string {
	return fmt.Sprintf(
		"🌊 Previsão para %s:\n\n"+
			"• Altura média: %.1f m\n"+
			"• Período médio: %.1f s\n"+
			"• Vento médio: %.1f m/s (%s)\n"+
			"📅 Atualizado: %s UTC",
		spot.Name,
		s.AvgWaveHeight,
		s.AvgWavePeriod,
		s.AvgWindSpeed,
		s.WindLabel,
		now.UTC().Format("02/01/2006 15:04"),
	)
}

// renderThreeDays lists the next three calendar dates in order. A date
// with no resolved hours is reported explicitly, never omitted.
func renderThreeDays(spot models.Spot, byDay map[string][]models.HourlyMeasure, now time.Time) string {
	days := make([]string, 0, 3)
	base := now.UTC()
	for i := 0; i < 3; i++ {
		days = append(days, base.AddDate(0, 0, i).Format(dayLayout))
	}
	sort.Strings(days)

	var b strings.Builder
	fmt.Fprintf(&b, "🌊 Previsão 3 dias para %s:\n", spot.Name)

	for _, day := range days {
		date, _ := time.Parse(dayLayout, day)
		fmt.Fprintf(&b, "\n📅 %s\n", date.Format("02/01"))

		measures := byDay[day]
		if len(measures) == 0 {
			b.WriteString("• " + msgNoDataForDay + "\n")
			continue
		}

		s := Average(day, measures)
		fmt.Fprintf(&b, "• Altura média: %.1f m\n", s.AvgWaveHeight)
		fmt.Fprintf(&b, "• Período médio: %.1f s\n", s.AvgWavePeriod)
		fmt.Fprintf(&b, "• Vento médio: %.1f m/s (%s)\n", s.AvgWindSpeed, s.WindLabel)
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderFallback(spot models.Spot, s models.FallbackSummary) string {
	return fmt.Sprintf(
		"🌊 Previsão simplificada para %s (fonte alternativa, próximas 24h):\n\n"+
			"• Altura média: %.1f m\n"+
			"• Vento médio: %.1f m/s",
		spot.Name,
		s.AvgWaveHeight,
		s.AvgWindSpeed,
	)
}
