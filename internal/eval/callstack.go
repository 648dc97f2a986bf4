package eval

import "github.com/mwildehahn/monty/internal/errors"

// callStack tracks active frames purely for diagnostics: building
// exception tracebacks and enforcing the recursion limit. It does not
// own variable bindings; those live in the Environment chain.
type callStack struct {
	frames   []errors.StackFrame
	maxDepth int
}

func newCallStack(maxDepth int) *callStack {
	return &callStack{maxDepth: maxDepth}
}

func (c *callStack) push(functionName, fileName string, pos errors.Position) bool {
	if c.maxDepth > 0 && len(c.frames) >= c.maxDepth {
		return false
	}
	p := pos
	c.frames = append(c.frames, errors.NewStackFrame(functionName, fileName, &p))
	return true
}

func (c *callStack) pop() {
	if len(c.frames) > 0 {
		c.frames = c.frames[:len(c.frames)-1]
	}
}

func (c *callStack) snapshot() errors.StackTrace {
	out := make(errors.StackTrace, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *callStack) depth() int { return len(c.frames) }
