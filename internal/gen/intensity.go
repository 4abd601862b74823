package gen

import "time"

// activityBucket is a named hour range with its activity intensity.
// Buckets are checked in order; the first match wins, so keep them sorted
// if ranges ever overlap.
type activityBucket struct {
	name      string
	startHour int
	endHour   int // inclusive
	intensity float64
}

var activityBuckets = []activityBucket{
	{"morning_rush", 9, 11, 0.8},
	{"afternoon_work", 13, 17, 0.6},
	{"evening_coding", 19, 22, 0.4},
}

const (
	weekendIntensity = 0.2
	defaultIntensity = 0.1
)

// Intensity maps a wall-clock timestamp to a simulated developer activity
// level in [0,1]. Weekends are uniformly quiet; weekday hours outside every
// bucket fall back to the default low intensity.
func Intensity(t time.Time) float64 {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return weekendIntensity
	}
	hour := t.Hour()
	for _, b := range activityBuckets {
		if hour >= b.startHour && hour <= b.endHour {
			return b.intensity
		}
	}
	return defaultIntensity
}
