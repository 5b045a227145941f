package ir

import (
	"fmt"
	"strings"
)

// Instruction is a single non-terminator three-address operation: it
// consumes zero or more Args and, unless its result Type is Void,
// produces exactly one named register.
type Instruction struct {
	Op     OpCode
	Result string // register name this instruction defines; "" if Void
	Type   *LLType
	Args   []Value

	// Callee names the function or extern this instruction invokes.
	// Only meaningful when Op == OpCall.
	Callee string
}

func (in *Instruction) String() string {
	args := make([]string, len(in.Args))
	for i, a := range in.Args {
		args[i] = a.String()
	}

	var body string
	switch in.Op {
	case OpCall:
		body = fmt.Sprintf("call %s %s(%s)", in.Type, in.Callee, strings.Join(args, ", "))
	case OpAlloca:
		body = fmt.Sprintf("alloca %s", in.Type.Elem)
	case OpBitcast:
		body = fmt.Sprintf("bitcast %s to %s", args[0], in.Type)
	default:
		body = fmt.Sprintf("%s %s %s", in.Op, in.Type, strings.Join(args, ", "))
	}

	if in.Result == "" {
		return body
	}
	return fmt.Sprintf("%%%s = %s", in.Result, body)
}
