package events

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"osbc/osufile"
	"osbc/storyboard"
)

// Parse decodes the body of an `[Events]` section. Line numbers in returned
// errors are 0-based physical lines of s, blank lines included.
func Parse(s string, version osufile.Version, log *zap.Logger) (Events, error) {
	if err := osufile.CheckVersion(version); err != nil {
		return nil, err
	}
	policy := osufile.PolicyFor(version)

	var (
		events  Events
		builder *storyboard.Builder
	)
	lineNo := -1
	for line := range strings.Lines(s) {
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "//"); ok {
			events = append(events, Comment(rest))
			continue
		}

		if depth := indentDepth(line); depth > 0 {
			if builder == nil {
				return nil, osufile.NewLineError(ErrStoryboardCmdWithNoSprite, lineNo)
			}
			cmd, err := storyboard.ParseCommand(line[depth:])
			if err != nil {
				return nil, osufile.NewLineError(err, lineNo)
			}
			if err := builder.Push(cmd, depth); err != nil {
				return nil, osufile.NewLineError(err, lineNo)
			}
			continue
		}

		obj, objErr := storyboard.ParseObject(line, version)
		if objErr == nil {
			builder = storyboard.NewBuilder(obj)
			events = append(events, StoryboardObject{Object: obj})
			continue
		}
		var unknownObj *storyboard.UnknownObjectTypeError
		if !errors.As(objErr, &unknownObj) {
			// the header named a sprite or animation, the rest is broken
			return nil, osufile.NewLineError(objErr, lineNo)
		}

		event, err := parseNormalEvent(line, version)
		if err != nil {
			return nil, osufile.NewLineError(err, lineNo)
		}
		if ne, ok := event.(NormalEvent); ok {
			if _, isColour := ne.Params.(ColourTransformation); isColour && !policy.ColourEventRepresentable {
				log.Warn("background colour event kept in memory but not representable at this file format version",
					zap.Int("line", lineNo), zap.Int("version", version))
			}
		}
		builder = nil
		events = append(events, event)
	}
	return events, nil
}

// indentDepth counts the leading indentation run. Historic storyboards use
// underscores interchangeably with spaces.
func indentDepth(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '_' {
			return i
		}
	}
	return len(line)
}
