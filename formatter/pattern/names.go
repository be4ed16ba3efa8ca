package pattern

// Name tables indexed by the 0-based weekday (Sunday first) and month
// (January first) of a breakdown.
var (
	weekdayAbbr = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	weekdayFull = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	monthAbbr   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	monthFull   = [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

func ampm(hour int) string {
	if hour >= 12 {
		return "PM"
	}
	return "AM"
}

// to12h maps 0..23 to the 12-hour clock: 0 and 12 become 12.
func to12h(hour int) int {
	if hour > 12 {
		return hour - 12
	}
	if hour == 0 {
		return 12
	}
	return hour
}
