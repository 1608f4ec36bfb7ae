package discord

// ActivityType enumerates what an activity represents.
type ActivityType int

// Activity type values.
const (
	ActivityTypePlaying ActivityType = iota
	ActivityTypeStreaming
	ActivityTypeListening
	ActivityTypeWatching
	ActivityTypeCustom
	ActivityTypeCompeting
)

// Activity is the rich presence a user or bot advertises.
type Activity struct {
	Type ActivityType `json:"type"`
	Name string       `json:"name"`
}

// Playing returns a "Playing name" activity.
func Playing(name string) *Activity {
	return &Activity{Type: ActivityTypePlaying, Name: name}
}

// Streaming returns a "Streaming name" activity.
func Streaming(name string) *Activity {
	return &Activity{Type: ActivityTypeStreaming, Name: name}
}

// Listening returns a "Listening to name" activity.
func Listening(name string) *Activity {
	return &Activity{Type: ActivityTypeListening, Name: name}
}

// Watching returns a "Watching name" activity.
func Watching(name string) *Activity {
	return &Activity{Type: ActivityTypeWatching, Name: name}
}

// Custom returns a custom status activity.
func Custom(name string) *Activity {
	return &Activity{Type: ActivityTypeCustom, Name: name}
}

// Competing returns a "Competing in name" activity.
func Competing(name string) *Activity {
	return &Activity{Type: ActivityTypeCompeting, Name: name}
}
