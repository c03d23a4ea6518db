package store

import "math/rand/v2"

// motivationalQuotes is the fixed pool the daily quote is drawn from.
var motivationalQuotes = []string{
	"The only bad workout is the one that didn't happen.",
	"Success starts with self-discipline.",
	"Your body can stand almost anything. It's your mind you have to convince.",
	"The pain you feel today will be the strength you feel tomorrow.",
	"Don't stop when you're tired. Stop when you're done.",
	"Strength does not come from the physical capacity. It comes from an indomitable will.",
	"The difference between try and triumph is a little umph.",
	"Small progress is still progress.",
	"Sweat is just fat crying.",
	"You don't have to be great to start, but you have to start to be great.",
	"A one hour workout is 4% of your day. No excuses.",
	"Fitness is not about being better than someone else. It's about being better than you used to be.",
}

// randomQuote picks uniformly from the pool. It may repeat the current quote;
// there is deliberately no dedup against the previous pick.
func randomQuote() string {
	return motivationalQuotes[rand.IntN(len(motivationalQuotes))]
}
