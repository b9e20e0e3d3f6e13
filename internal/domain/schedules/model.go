package schedules

// ActivityType de un slot.
// @Enum feed, walk, letout
type ActivityType string

const (
	ActivityFeed   ActivityType = "feed"
	ActivityWalk   ActivityType = "walk"
	ActivityLetOut ActivityType = "letout"
)

// TimePeriod del día.
// @Enum morning, afternoon, evening
type TimePeriod string

const (
	PeriodMorning   TimePeriod = "morning"
	PeriodAfternoon TimePeriod = "afternoon"
	PeriodEvening   TimePeriod = "evening"
)

func ParseActivityType(s string) (ActivityType, bool) {
	switch ActivityType(s) {
	case ActivityFeed, ActivityWalk, ActivityLetOut:
		return ActivityType(s), true
	}
	return "", false
}

func ParsePeriod(s string) (TimePeriod, bool) {
	switch TimePeriod(s) {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return TimePeriod(s), true
	}
	return "", false
}

// Schedule es el plan diario de una mascota. SessionID nil = plan estándar.
type Schedule struct {
	ID        string
	PetID     string
	SessionID *string
	Times     []Slot
}

// Slot = fila de schedule_times.
type Slot struct {
	ID           string
	ScheduleID   string
	ActivityType ActivityType
	TimePeriod   TimePeriod
}

func (s Slot) key() string {
	return string(s.ActivityType) + "/" + string(s.TimePeriod)
}

// Has indica si el plan ya tiene ese (tipo, período).
func (s Schedule) Has(t ActivityType, p TimePeriod) bool {
	for _, st := range s.Times {
		if st.ActivityType == t && st.TimePeriod == p {
			return true
		}
	}
	return false
}
