package events

import (
	"strconv"
	"strings"

	"osbc/osufile"
	"osbc/storyboard"
)

// Events is the parsed section: one entry per source line, in source order.
type Events []Event

// Event is one line-level timeline entry: a comment, a shorthand normal
// event or a storyboard object.
type Event interface {
	// Render returns the textual form of the event at a version. The
	// second result is false when the event has no textual form at that
	// version; the caller decides whether to omit or abort.
	Render(version osufile.Version) (string, bool)
}

// Comment is a `//` line, stored without the marker.
type Comment string

func (c Comment) Render(osufile.Version) (string, bool) {
	return "//" + string(c), true
}

// NormalEvent is one of the shorthand timeline records. StartTime is the
// *internal* time: for old-format versions it already includes the legacy
// offset added on parse and removed again on render.
type NormalEvent struct {
	StartTime int
	Params    EventParams
}

// EventParams is the closed variant set of normal event payloads.
type EventParams interface {
	// render produces the full event line for the given internal start
	// time, or false when not representable at the version.
	render(startTime int, version osufile.Version) (string, bool)
}

func (e NormalEvent) Render(version osufile.Version) (string, bool) {
	return e.Params.render(e.StartTime, version)
}

// StoryboardObject wraps a storyboard element as a timeline event. The
// object's command tree renders as indented lines below the header.
type StoryboardObject struct {
	Object *storyboard.Object
}

func (e StoryboardObject) Render(version osufile.Version) (string, bool) {
	lines := append([]string{e.Object.Render(version)}, storyboard.RenderCommands(e.Object.Commands)...)
	return strings.Join(lines, "\n"), true
}

// Render serializes the whole section at a version, reproducing the exact
// per-version grammar. It fails with *NotRepresentableError when any event
// has no textual form at that version; callers that prefer to drop such
// events can render event by event instead.
func (e Events) Render(version osufile.Version) (string, error) {
	lines := make([]string, 0, len(e))
	for i, event := range e {
		s, ok := event.Render(version)
		if !ok {
			return "", &NotRepresentableError{Index: i, Version: version}
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n"), nil
}

func renderTime(t int, version osufile.Version) string {
	return strconv.Itoa(osufile.PolicyFor(version).ToRenderedTime(t))
}
