package forecast

import "math"

var compassLabels = [8]string{
	"Norte",
	"Nordeste",
	"Leste",
	"Sudeste",
	"Sul",
	"Sudoeste",
	"Oeste",
	"Noroeste",
}

// CompassLabel maps a wind bearing in degrees to one of the eight
// Portuguese compass labels. Bearings outside [0, 360) are normalized
// first, so the function is total: any real input yields a label.
func CompassLabel(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// Half-sector offset so each label covers ±22.5° around its
	// bearing; the modulo wraps 337.5°-360° back onto Norte.
	sector := int((d+22.5)/45) % 8
	return compassLabels[sector]
}
