package weather

import (
	"weatherseed/internal/rng"
	"weatherseed/internal/xxhash32"
)

// greenRainCandidates are the eligible summer days for the single
// green-rain day of the year; disjoint from the summer festival days
// (11, 28) by construction.
var greenRainCandidates = [8]int{5, 6, 7, 14, 15, 16, 18, 23}

// Oracle predicts the first-year weather calendar for a game seed. It
// holds a single reusable Calendar buffer so that scanning many seeds
// never allocates on the hot path; callers that need to retain a
// result across calls must copy it (see Oracle.Predict's doc).
//
// An Oracle is not safe for concurrent use: the search driver gives
// each worker its own instance.
type Oracle struct {
	buf Calendar
}

// NewOracle returns an Oracle with a freshly zeroed scratch buffer.
func NewOracle() *Oracle {
	return &Oracle{}
}

// Predict fills and returns the oracle's scratch calendar for
// gameSeed. The returned pointer aliases the oracle's internal
// buffer and is invalidated by the next call to Predict.
func (o *Oracle) Predict(gameSeed int32, legacy bool) *Calendar {
	greenRainDay := o.greenRainDay(gameSeed, legacy)

	for day := 1; day <= CalendarDays; day++ {
		season := Season((day - 1) / DaysPerSeason)
		dayOfMonth := ((day - 1) % DaysPerSeason) + 1
		o.buf[day-1] = isRainy(season, dayOfMonth, day, gameSeed, greenRainDay, legacy)
	}
	return &o.buf
}

// greenRainDay computes the single fixed green-rain day for the
// year's summer, derived once per seed.
func (o *Oracle) greenRainDay(gameSeed int32, legacy bool) int {
	const year = 1 // year is a literal; the *1 multiplication below is vestigial but kept for fidelity with the reference's year-indexed seed.
	seed := rng.Mix(year*777, gameSeed, 0, 0, 0, legacy)
	idx := rng.NextInt(seed, len(greenRainCandidates))
	return greenRainCandidates[idx]
}

// GreenRainDay exposes the same draw Predict makes internally, for
// callers that want to report it alongside an already-computed
// Calendar without re-deriving it by hand.
func (o *Oracle) GreenRainDay(gameSeed int32, legacy bool) int {
	return o.greenRainDay(gameSeed, legacy)
}

// RainyDaysBySeason splits cal's rainy absolute days into per-season
// day-of-month lists, ascending within each season.
func RainyDaysBySeason(cal *Calendar) (spring, summer, fall []int) {
	for day := 1; day <= CalendarDays; day++ {
		if !cal.Rainy(day) {
			continue
		}
		season := Season((day - 1) / DaysPerSeason)
		dayOfMonth := ((day-1)%DaysPerSeason) + 1
		switch season {
		case Spring:
			spring = append(spring, dayOfMonth)
		case Summer:
			summer = append(summer, dayOfMonth)
		case Fall:
			fall = append(fall, dayOfMonth)
		}
	}
	return
}

func isRainy(season Season, dayOfMonth, absoluteDay int, gameSeed int32, greenRainDay int, legacy bool) bool {
	switch season {
	case Spring:
		switch dayOfMonth {
		case 1, 2, 4:
			return false
		case 3:
			return true
		case 13, 24:
			return false
		}
	case Summer:
		if dayOfMonth == greenRainDay {
			return true
		}
		if dayOfMonth == 11 || dayOfMonth == 28 {
			return false
		}
		if dayOfMonth%13 == 0 {
			return true
		}
		return summerRainRoll(dayOfMonth, absoluteDay, gameSeed, legacy)
	case Fall:
		switch dayOfMonth {
		case 16, 27:
			return false
		}
	}
	return genericRainRoll(absoluteDay, gameSeed, legacy)
}

func summerRainRoll(dayOfMonth, absoluteDay int, gameSeed int32, legacy bool) bool {
	seed := rng.Mix(int32(absoluteDay-1), gameSeed/2, xxhash32.SummerRainChanceHash, 0, 0, legacy)
	chance := 0.12 + 0.003*float64(dayOfMonth-1)
	return rng.NextDouble(seed) < chance
}

func genericRainRoll(absoluteDay int, gameSeed int32, legacy bool) bool {
	seed := rng.Mix(xxhash32.LocationWeatherHash, gameSeed, int32(absoluteDay-1), 0, 0, legacy)
	return rng.NextDouble(seed) < 0.183
}
