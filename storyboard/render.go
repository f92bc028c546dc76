package storyboard

import "strings"

// indentChar is what the serializer emits; the parser additionally accepts
// underscores.
const indentChar = " "

// RenderCommands flattens a command tree back into indented lines, one line
// per command, starting at depth 1. Like the builder it walks with an
// explicit stack so arbitrarily deep Loop/Trigger nesting cannot exhaust the
// call stack. An empty tree yields no lines.
func RenderCommands(commands []Command) []string {
	if len(commands) == 0 {
		return nil
	}

	type frame struct {
		commands []Command
		index    int
		depth    int
	}

	var lines []string
	stack := []frame{{commands: commands, depth: 1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.index >= len(top.commands) {
			stack = stack[:len(stack)-1]
			continue
		}
		cmd := &top.commands[top.index]
		top.index++

		lines = append(lines, strings.Repeat(indentChar, top.depth)+cmd.Properties.Render())

		if children := cmd.childCommands(); children != nil && len(*children) > 0 {
			stack = append(stack, frame{commands: *children, depth: top.depth + 1})
		}
	}
	return lines
}
