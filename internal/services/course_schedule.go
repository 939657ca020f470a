package services

// BuildSchedule computes per-stop arrival times in cumulative minutes since
// midnight of the start day. It is only called when both a start time and a
// start point are present, so legs[0] is always the inbound leg from the
// start point. Values keep growing monotonically past 24h; display-side
// formatting wraps them onto the clock.
//
//	arrival(0) = start + travel(start -> stop 0)
//	arrival(i) = arrival(i-1) + stay(i-1) + travel(i-1 -> i)
func BuildSchedule(startMinutes int, legs []TravelLeg, stayMinutes []int) []int {
	if len(legs) == 0 {
		return nil
	}

	arrivals := make([]int, len(legs))
	t := startMinutes + legs[0].DurationMinutes
	arrivals[0] = t

	for i := 1; i < len(legs); i++ {
		stay := stayMinutes[i-1]
		if stay <= 0 {
			stay = DefaultStayMinutes
		}
		t += stay + legs[i].DurationMinutes
		arrivals[i] = t
	}
	return arrivals
}
