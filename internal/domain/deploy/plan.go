package deploy

import "fmt"

// DefaultGasBudget is the fixed gas budget, in MIST, applied to every plan.
const DefaultGasBudget uint64 = 1_000_000_000

// ArgumentKind distinguishes where a command argument comes from.
type ArgumentKind uint8

const (
	ArgGasCoin ArgumentKind = iota
	ArgInput
	ArgResult
	ArgNestedResult
)

// Argument references either a transaction input or the output of an
// earlier command in the same plan.
type Argument struct {
	Kind   ArgumentKind
	Index  uint16
	Nested uint16
}

// InputArg references plan input i.
func InputArg(i uint16) Argument {
	return Argument{Kind: ArgInput, Index: i}
}

// ResultArg references the value produced by command i.
func ResultArg(i uint16) Argument {
	return Argument{Kind: ArgResult, Index: i}
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgGasCoin:
		return "GasCoin"
	case ArgInput:
		return fmt.Sprintf("Input(%d)", a.Index)
	case ArgResult:
		return fmt.Sprintf("Result(%d)", a.Index)
	case ArgNestedResult:
		return fmt.Sprintf("NestedResult(%d,%d)", a.Index, a.Nested)
	default:
		return fmt.Sprintf("Argument(%d)", a.Kind)
	}
}

// PureValue is an input passed by value. The encoder decides the wire form.
type PureValue interface {
	pureValue()
}

// PureU8 is a Move u8.
type PureU8 uint8

// PureBytes is a Move vector<u8>.
type PureBytes []byte

// PureAddress is a Move address.
type PureAddress Address

func (PureU8) pureValue()      {}
func (PureBytes) pureValue()   {}
func (PureAddress) pureValue() {}

// Input is a transaction input: exactly one of Object or Pure is set.
type Input struct {
	Object *ObjectID
	Pure   PureValue
}

// IsObject reports whether the input refers to an on-chain object.
func (in Input) IsObject() bool {
	return in.Object != nil
}

// CommandKind enumerates the commands a deployment plan uses.
type CommandKind uint8

const (
	CommandMoveCall CommandKind = iota
	CommandTransferObjects
	CommandPublish
	CommandUpgrade
)

func (k CommandKind) String() string {
	switch k {
	case CommandMoveCall:
		return "MoveCall"
	case CommandTransferObjects:
		return "TransferObjects"
	case CommandPublish:
		return "Publish"
	case CommandUpgrade:
		return "Upgrade"
	default:
		return fmt.Sprintf("Command(%d)", k)
	}
}

// MoveTarget is a fully qualified Move function.
type MoveTarget struct {
	Package  ObjectID
	Module   string
	Function string
}

func (t MoveTarget) String() string {
	return fmt.Sprintf("%s::%s::%s", t.Package, t.Module, t.Function)
}

// Command is one step of a programmable transaction. Only the fields that
// belong to Kind are populated.
type Command struct {
	Kind CommandKind

	// MoveCall
	Target    MoveTarget
	Arguments []Argument

	// Publish and Upgrade
	Modules      [][]byte
	Dependencies []ObjectID

	// Upgrade
	Package ObjectID
	Ticket  Argument

	// TransferObjects
	Objects   []Argument
	Recipient Argument
}

// References returns every argument the command consumes, in wire order.
func (c Command) References() []Argument {
	switch c.Kind {
	case CommandMoveCall:
		return c.Arguments
	case CommandUpgrade:
		return []Argument{c.Ticket}
	case CommandTransferObjects:
		refs := make([]Argument, 0, len(c.Objects)+1)
		refs = append(refs, c.Objects...)
		return append(refs, c.Recipient)
	default:
		return nil
	}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandMoveCall:
		return fmt.Sprintf("MoveCall %s%v", c.Target, c.Arguments)
	case CommandPublish:
		return fmt.Sprintf("Publish %d modules, %d dependencies", len(c.Modules), len(c.Dependencies))
	case CommandUpgrade:
		return fmt.Sprintf("Upgrade %s with %s (%d modules)", c.Package, c.Ticket, len(c.Modules))
	case CommandTransferObjects:
		return fmt.Sprintf("TransferObjects %v -> %s", c.Objects, c.Recipient)
	default:
		return c.Kind.String()
	}
}

// TransactionPlan is an ordered programmable transaction. Once assembled it is
// treated as immutable and encoded exactly once per submission.
type TransactionPlan struct {
	Inputs    []Input
	Commands  []Command
	GasBudget uint64
}

// NewTransactionPlan returns an empty plan with the given gas budget.
func NewTransactionPlan(gasBudget uint64) *TransactionPlan {
	return &TransactionPlan{GasBudget: gasBudget}
}

// Object adds an object input, reusing the existing slot when the same object
// is referenced more than once.
func (p *TransactionPlan) Object(id ObjectID) Argument {
	for i, in := range p.Inputs {
		if in.Object != nil && *in.Object == id {
			return InputArg(uint16(i))
		}
	}
	obj := id
	p.Inputs = append(p.Inputs, Input{Object: &obj})
	return InputArg(uint16(len(p.Inputs) - 1))
}

// Pure adds a pure input.
func (p *TransactionPlan) Pure(v PureValue) Argument {
	p.Inputs = append(p.Inputs, Input{Pure: v})
	return InputArg(uint16(len(p.Inputs) - 1))
}

// Add appends a command and returns a reference to its result.
func (p *TransactionPlan) Add(c Command) Argument {
	p.Commands = append(p.Commands, c)
	return ResultArg(uint16(len(p.Commands) - 1))
}

// Kind reports which workflow the plan performs, or "" when it neither
// publishes nor upgrades a package.
func (p *TransactionPlan) Kind() Kind {
	kind := Kind("")
	for _, c := range p.Commands {
		switch c.Kind {
		case CommandUpgrade:
			return KindUpgrade
		case CommandPublish:
			kind = KindPublish
		}
	}
	return kind
}

// ObjectInputs returns the ids of every object input in input order.
func (p *TransactionPlan) ObjectInputs() []ObjectID {
	var ids []ObjectID
	for _, in := range p.Inputs {
		if in.Object != nil {
			ids = append(ids, *in.Object)
		}
	}
	return ids
}

// Consumers returns the indices of the commands that reference the result of
// command i.
func (p *TransactionPlan) Consumers(i int) []int {
	var out []int
	for j, c := range p.Commands {
		for _, ref := range c.References() {
			if (ref.Kind == ArgResult || ref.Kind == ArgNestedResult) && int(ref.Index) == i {
				out = append(out, j)
				break
			}
		}
	}
	return out
}

// Validate checks the reference structure of the plan: inputs are in range,
// results only flow forward, and every transaction-local result is consumed
// exactly once, by the command immediately after the one producing it.
func (p *TransactionPlan) Validate() error {
	if len(p.Commands) == 0 {
		return &ValidationError{Field: "plan", Message: "no commands"}
	}
	if p.GasBudget == 0 {
		return &ValidationError{Field: "gas_budget", Message: "must be positive"}
	}

	uses := make(map[uint16]int)
	for i, c := range p.Commands {
		for _, ref := range c.References() {
			switch ref.Kind {
			case ArgInput:
				if int(ref.Index) >= len(p.Inputs) {
					return &ValidationError{
						Field:   fmt.Sprintf("command[%d]", i),
						Message: fmt.Sprintf("%s out of range (%d inputs)", ref, len(p.Inputs)),
					}
				}
			case ArgResult, ArgNestedResult:
				if int(ref.Index) >= i {
					return &ValidationError{
						Field:   fmt.Sprintf("command[%d]", i),
						Message: fmt.Sprintf("%s does not refer to an earlier command", ref),
					}
				}
				if int(ref.Index) != i-1 {
					return &ValidationError{
						Field:   fmt.Sprintf("command[%d]", i),
						Message: fmt.Sprintf("%s must be consumed by the immediately following command", ref),
					}
				}
				uses[ref.Index]++
				if uses[ref.Index] > 1 {
					return &ValidationError{
						Field:   fmt.Sprintf("command[%d]", i),
						Message: fmt.Sprintf("%s consumed more than once", ref),
					}
				}
			}
		}
	}

	for i, c := range p.Commands {
		if yieldsValue(c) && uses[uint16(i)] == 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("command[%d]", i),
				Message: fmt.Sprintf("result of %s is never consumed", c.Kind),
			}
		}
	}
	return nil
}

// yieldsValue reports whether a command produces a transaction-local value
// that must be consumed within the plan.
func yieldsValue(c Command) bool {
	switch c.Kind {
	case CommandPublish, CommandUpgrade:
		return true
	case CommandMoveCall:
		return c.Target == AuthorizeUpgradeTarget
	default:
		return false
	}
}

// Framework functions used by the upgrade flow.
var (
	AuthorizeUpgradeTarget = MoveTarget{Package: FrameworkPackage, Module: "package", Function: "authorize_upgrade"}
	CommitUpgradeTarget    = MoveTarget{Package: FrameworkPackage, Module: "package", Function: "commit_upgrade"}
)
