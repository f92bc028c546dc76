package storyboard

// Builder attaches parsed commands to an object's command tree by
// indentation depth. It keeps an explicit stack of open containers so that
// nesting depth is bounded by input size, never by the call stack; real
// storyboards nest Loop/Trigger bodies tens of levels deep.
type Builder struct {
	object *Object
	stack  []builderFrame
}

type builderFrame struct {
	commands *[]Command
	depth    int
}

// NewBuilder starts a command tree for obj. Depth 1 is the object's own
// command list.
func NewBuilder(obj *Object) *Builder {
	return &Builder{
		object: obj,
		stack:  []builderFrame{{commands: &obj.Commands, depth: 1}},
	}
}

// Push attaches cmd at the given indentation depth. The depth must match the
// container stack exactly: one deeper than the current depth only when the
// previously pushed command opened a Loop or Trigger, equal to any depth
// already on the stack otherwise.
func (b *Builder) Push(cmd Command, depth int) error {
	if depth < 1 {
		return &InvalidIndentationError{Expected: 1, Actual: depth}
	}

	if depth == 1 {
		// back to the object's own list, all containers are closed
		b.stack = b.stack[:1]
		b.append(cmd)
		return nil
	}

	top := &b.stack[len(b.stack)-1]
	switch {
	case depth == top.depth:
		b.append(cmd)
	case depth == top.depth+1:
		opened := b.lastPushed()
		if opened == nil {
			return &InvalidIndentationError{Expected: top.depth, Actual: depth}
		}
		children := opened.childCommands()
		if children == nil {
			// previous command cannot own children, descending is
			// a depth violation
			return &InvalidIndentationError{Expected: top.depth, Actual: depth}
		}
		b.stack = append(b.stack, builderFrame{commands: children, depth: depth})
		b.append(cmd)
	case depth > top.depth+1:
		return &InvalidIndentationError{Expected: top.depth + 1, Actual: depth}
	default:
		// unwind containers until the stack matches the shallower depth
		for b.stack[len(b.stack)-1].depth > depth {
			b.stack = b.stack[:len(b.stack)-1]
		}
		if b.stack[len(b.stack)-1].depth != depth {
			return &InvalidIndentationError{Expected: b.stack[len(b.stack)-1].depth, Actual: depth}
		}
		b.append(cmd)
	}
	return nil
}

func (b *Builder) append(cmd Command) {
	cmds := b.stack[len(b.stack)-1].commands
	*cmds = append(*cmds, cmd)
}

// lastPushed returns the most recently appended command at the current stack
// top, the candidate container for a depth increase.
func (b *Builder) lastPushed() *Command {
	cmds := *b.stack[len(b.stack)-1].commands
	if len(cmds) == 0 {
		return nil
	}
	return &cmds[len(cmds)-1]
}
