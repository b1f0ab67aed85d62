package task

import "strings"

// Well-known tag keys. Tags carry domain facts as opaque "key:value"
// strings; anything that doesn't parse as key:value is inert.
const (
	TagBoard         = "board"
	TagLane          = "lane"
	TagCalendar      = "calendar"
	TagCalendarColor = "calendar-color"
	TagRecur         = "recur"
)

// splitTag returns the key/value halves of a tag, or ok=false when the
// tag is opaque. A tag is key:value iff it contains ':' and both halves
// are non-empty after trimming.
func splitTag(tag string) (key, value string, ok bool) {
	i := strings.Index(tag, ":")
	if i < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(tag[:i])
	value = strings.TrimSpace(tag[i+1:])
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// FirstTagValue returns the value of the first tag matching key, or ""
// if no keyed tag matches.
func FirstTagValue(tags []string, key string) string {
	for _, tag := range tags {
		if k, v, ok := splitTag(tag); ok && k == key {
			return v
		}
	}
	return ""
}

// RemoveTagsForKey returns tags with every "key:*" entry removed.
// Opaque tags are preserved untouched.
func RemoveTagsForKey(tags []string, key string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if k, _, ok := splitTag(tag); ok && k == key {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// PushTagUnique appends tag unless an identical tag is already present.
func PushTagUnique(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// Classification is the typed decoding of a task's keyed tags. Decode
// once per task; operate on the struct everywhere else.
type Classification struct {
	BoardID       string
	Lane          string
	CalendarID    string
	CalendarColor string
	Recurrence    string
}

func Classify(t Task) Classification {
	return Classification{
		BoardID:       FirstTagValue(t.Tags, TagBoard),
		Lane:          FirstTagValue(t.Tags, TagLane),
		CalendarID:    FirstTagValue(t.Tags, TagCalendar),
		CalendarColor: FirstTagValue(t.Tags, TagCalendarColor),
		Recurrence:    FirstTagValue(t.Tags, TagRecur),
	}
}

// CalendarSourced reports whether the task originated from an external
// calendar source rather than manual entry.
func (c Classification) CalendarSourced() bool {
	return c.CalendarID != ""
}

// Encode writes the classification back onto tags, replacing any
// existing keyed entries while leaving opaque tags alone.
func (c Classification) Encode(tags []string) []string {
	set := func(ts []string, key, value string) []string {
		ts = RemoveTagsForKey(ts, key)
		if value != "" {
			ts = PushTagUnique(ts, key+":"+value)
		}
		return ts
	}
	tags = set(tags, TagBoard, c.BoardID)
	tags = set(tags, TagLane, c.Lane)
	tags = set(tags, TagCalendar, c.CalendarID)
	tags = set(tags, TagCalendarColor, c.CalendarColor)
	tags = set(tags, TagRecur, c.Recurrence)
	return tags
}
