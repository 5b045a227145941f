package ir

import "fmt"

// Terminator is the single control-transfer operation every BasicBlock ends
// with: a return, an unconditional branch, or a two-way conditional branch.
// Exactly one of these shapes is populated, selected by Kind.
type Terminator struct {
	Kind string // "ret", "br", "condbr"

	// ret
	HasValue bool
	Value    Value

	// br
	Target string

	// condbr
	Cond      Value
	ThenLabel string
	ElseLabel string
}

// Ret builds a `ret void` terminator.
func Ret() *Terminator { return &Terminator{Kind: "ret"} }

// RetValue builds a `ret <value>` terminator.
func RetValue(v Value) *Terminator { return &Terminator{Kind: "ret", HasValue: true, Value: v} }

// Br builds an unconditional branch terminator.
func Br(target string) *Terminator { return &Terminator{Kind: "br", Target: target} }

// CondBr builds a two-way conditional branch terminator.
func CondBr(cond Value, thenLabel, elseLabel string) *Terminator {
	return &Terminator{Kind: "condbr", Cond: cond, ThenLabel: thenLabel, ElseLabel: elseLabel}
}

func (t *Terminator) String() string {
	switch t.Kind {
	case "ret":
		if t.HasValue {
			return fmt.Sprintf("ret %s", t.Value)
		}
		return "ret void"
	case "br":
		return fmt.Sprintf("br label %%%s", t.Target)
	case "condbr":
		return fmt.Sprintf("br %s, label %%%s, label %%%s", t.Cond, t.ThenLabel, t.ElseLabel)
	default:
		return fmt.Sprintf("<invalid terminator kind %q>", t.Kind)
	}
}

// BasicBlock is a straight-line instruction sequence ending in exactly one
// Terminator (spec's basic-block invariant). Term is nil only while the
// lowerer is still building the block.
type BasicBlock struct {
	Label        string
	Instructions []*Instruction
	Term         *Terminator
}

func (b *BasicBlock) String() string {
	out := b.Label + ":\n"
	for _, in := range b.Instructions {
		out += "  " + in.String() + "\n"
	}
	if b.Term != nil {
		out += "  " + b.Term.String() + "\n"
	}
	return out
}
