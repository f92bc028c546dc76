package events

import (
	"fmt"

	"osbc/osufile"
	"osbc/storyboard"
	"osbc/utils/debug"
)

// DumpTree renders the parsed section as an indented diagnostic tree. Meant
// for debug reports, not for round-tripping.
func (e Events) DumpTree() string {
	tw := debug.NewTreeWriter()
	for i, ev := range e {
		switch ev := ev.(type) {
		case Comment:
			tw.TextBlock(0, fmt.Sprintf("[%d] comment", i), string(ev))
		case NormalEvent:
			tw.Line(0, "[%d] %T start=%d", i, ev.Params, ev.StartTime)
		case Sample:
			tw.Line(0, "[%d] sample time=%s layer=%d file=%s", i, ev.Time, ev.Layer, ev.FileName)
		case StoryboardObject:
			obj := ev.Object
			tw.Line(0, "[%d] %T layer=%s origin=%s pos=%s", i, obj.Type,
				obj.Layer.Render(osufile.LatestVersion), obj.Origin.Render(osufile.LatestVersion), obj.Position)
			tw.TextBlock(1, "file", obj.Type.FilePath())
			dumpCommands(tw, obj.Commands, 1)
		default:
			tw.Line(0, "[%d] %T", i, ev)
		}
	}
	return tw.String()
}

// dumpCommands walks the tree with an explicit stack, the same discipline as
// storyboard.RenderCommands, so pathological nesting depth in the input
// cannot exhaust the call stack.
func dumpCommands(tw *debug.TreeWriter, cmds []storyboard.Command, depth int) {
	type frame struct {
		commands []storyboard.Command
		index    int
		depth    int
	}
	stack := []frame{{commands: cmds, depth: depth}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index >= len(top.commands) {
			stack = stack[:len(stack)-1]
			continue
		}
		c := &top.commands[top.index]
		top.index++

		tw.Line(top.depth, "%s", c.Properties.Render())

		var children []storyboard.Command
		switch p := c.Properties.(type) {
		case *storyboard.Loop:
			children = p.Commands
		case *storyboard.Trigger:
			children = p.Commands
		}
		if len(children) > 0 {
			stack = append(stack, frame{commands: children, depth: top.depth + 1})
		}
	}
}
