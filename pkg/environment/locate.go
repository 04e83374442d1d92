package environment

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
)

var (
	virageRe = regexp.MustCompile(`(?i)\b(?:virage|lacet|hairpin)\s*n?[°o]?\s*(\d+)`)
	kmRe     = regexp.MustCompile(`(?i)\bkm\s*(\d+(?:[.,]\d+)?)`)
	summitRe = regexp.MustCompile(`(?i)\b(?:sommet|summit|top)\b`)
	startRe  = regexp.MustCompile(`(?i)\b(?:départ|depart|start|base|pied)\b`)
)

// locator resolves free-text POI locations to progress along the route.
// Switchbacks are numbered from the top, as on the Alpe d'Huez signs, so
// "Virage N" sits at 1 - N/(highest N + 1).
type locator struct {
	maxVirage int
	routeKm   float64
}

func newLocator(pois []pass.POI, routeKm float64) locator {
	l := locator{routeKm: routeKm}
	for _, poi := range pois {
		if n, ok := virageNumber(poi.Location); ok && n > l.maxVirage {
			l.maxVirage = n
		}
	}
	return l
}

func (l locator) locate(location string) (float64, bool) {
	location = strings.TrimSpace(location)
	if location == "" {
		return 0, false
	}
	if n, ok := virageNumber(location); ok {
		return 1 - float64(n)/float64(l.maxVirage+1), true
	}
	if m := kmRe.FindStringSubmatch(location); m != nil && l.routeKm > 0 {
		km, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err == nil {
			return math.Max(0, math.Min(1, km/l.routeKm)), true
		}
	}
	if summitRe.MatchString(location) {
		return 1, true
	}
	if startRe.MatchString(location) {
		return 0, true
	}
	return 0, false
}

func virageNumber(location string) (int, bool) {
	m := virageRe.FindStringSubmatch(location)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
