package taskview

import "time"

// DeadlineLabel renders a deadline the way the task list shows it:
// "Today", "Tomorrow", "Overdue (Jan 2)" or "Jan 2, 2006". Calendar days
// are taken in now's location.
func DeadlineLabel(deadline, now time.Time) string {
	d := deadline.In(now.Location())
	switch {
	case sameDay(d, now):
		return "Today"
	case sameDay(d, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	case d.Before(now):
		return "Overdue (" + d.Format("Jan 2") + ")"
	default:
		return d.Format("Jan 2, 2006")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
