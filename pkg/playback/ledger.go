package playback

import "time"

// Application records one product applied to the timeline.
type Application struct {
	ID                 string    `json:"id"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	GrowthRateIncrease float64   `json:"growth_rate_increase"` // fractional, 0.05 = +5%
	AppliedAtDay       int       `json:"applied_at_day"`
	AppliedAt          time.Time `json:"applied_at"`

	// Saturated is set once a day at or after AppliedAtDay has been capped
	// at a growth factor of 1 while the application was in effect, whether
	// by this application or a later one. Removing such an application only
	// approximately restores the previous values.
	Saturated bool `json:"saturated"`
}

// reverseFactor is the multiplier that undoes a growth-rate increase when
// no day was capped: (1+inc)(1+r) = 1.
func reverseFactor(increase float64) float64 {
	return -increase / (1 + increase)
}

// ledger is the ordered record of applications still in effect.
type ledger struct {
	apps []Application
}

func (l *ledger) add(a Application) {
	l.apps = append(l.apps, a)
}

// markSaturated flags every application in effect on day. A negative day
// marks nothing.
func (l *ledger) markSaturated(day int) {
	if day < 0 {
		return
	}
	for i := range l.apps {
		if l.apps[i].AppliedAtDay <= day {
			l.apps[i].Saturated = true
		}
	}
}

func (l *ledger) find(id string) (int, bool) {
	for i, a := range l.apps {
		if a.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (l *ledger) removeAt(i int) Application {
	a := l.apps[i]
	l.apps = append(l.apps[:i], l.apps[i+1:]...)
	return a
}

func (l *ledger) list() []Application {
	out := make([]Application, len(l.apps))
	copy(out, l.apps)
	return out
}
