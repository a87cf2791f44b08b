package advice

import "math/rand"

var tips = []string{
	"Try the Pomodoro Technique: 25 minutes of focused work followed by a 5-minute break.",
	"Use the 2-Minute Rule: If a task takes less than two minutes, do it now.",
	"Eat the Frog: Tackle your most challenging task first thing in the morning.",
	"Time blocking can help you focus. Assign specific time slots for each task on your calendar.",
	"Minimize distractions. Put your phone on silent and close unnecessary tabs while you study.",
	"Prepare for tomorrow tonight. A little planning before bed can make your morning much smoother.",
}

// Tip picks a productivity tip. A nil r uses the global source.
func Tip(r *rand.Rand) string {
	if r == nil {
		return tips[rand.Intn(len(tips))]
	}
	return tips[r.Intn(len(tips))]
}
