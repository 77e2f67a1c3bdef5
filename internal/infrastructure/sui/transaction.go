// Package sui encodes deployment plans as Sui transaction data.
package sui

import (
	"fmt"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// DigestLength is the length of object and transaction digests.
const DigestLength = 32

// ObjectRef pins an object at a specific version.
type ObjectRef struct {
	ID      deploy.ObjectID
	Version uint64
	Digest  [DigestLength]byte
}

// ResolvedObject is an object input with the ownership information needed to
// pick its ObjectArg variant.
type ResolvedObject struct {
	Ref                  ObjectRef
	Shared               bool
	InitialSharedVersion uint64
}

// GasData is the gas section of TransactionData.
type GasData struct {
	Payment []ObjectRef
	Owner   deploy.Address
	Price   uint64
	Budget  uint64
}

// enum tags, in declaration order of the on-chain types.
const (
	txDataV1 = 0

	txKindProgrammable = 0

	callArgPure   = 0
	callArgObject = 1

	objectArgImmOrOwned = 0
	objectArgShared     = 1

	cmdMoveCall        = 0
	cmdTransferObjects = 1
	cmdPublish         = 4
	cmdUpgrade         = 6

	argGasCoin      = 0
	argInput        = 1
	argResult       = 2
	argNestedResult = 3

	expirationNone = 0
)

// EncodeTransactionData serializes plan as TransactionData::V1 with a
// programmable transaction kind. objects must contain every object input.
func EncodeTransactionData(plan *deploy.TransactionPlan, objects map[deploy.ObjectID]ResolvedObject, sender deploy.Address, gas GasData) ([]byte, error) {
	var w bcsWriter

	w.variant(txDataV1)
	w.variant(txKindProgrammable)

	w.length(len(plan.Inputs))
	for i, in := range plan.Inputs {
		if err := writeInput(&w, in, objects); err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
	}

	w.length(len(plan.Commands))
	for i, c := range plan.Commands {
		if err := writeCommand(&w, c); err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
	}

	w.fixed(sender[:])

	w.length(len(gas.Payment))
	for _, ref := range gas.Payment {
		writeObjectRef(&w, ref)
	}
	w.fixed(gas.Owner[:])
	w.u64(gas.Price)
	w.u64(gas.Budget)

	w.variant(expirationNone)
	return w.Bytes(), nil
}

func writeInput(w *bcsWriter, in deploy.Input, objects map[deploy.ObjectID]ResolvedObject) error {
	if in.Object != nil {
		obj, ok := objects[*in.Object]
		if !ok {
			return fmt.Errorf("object %s was not resolved", in.Object)
		}
		w.variant(callArgObject)
		if obj.Shared {
			w.variant(objectArgShared)
			w.fixed(obj.Ref.ID[:])
			w.u64(obj.InitialSharedVersion)
			w.bool(true)
			return nil
		}
		w.variant(objectArgImmOrOwned)
		writeObjectRef(w, obj.Ref)
		return nil
	}

	pure, err := encodePure(in.Pure)
	if err != nil {
		return err
	}
	w.variant(callArgPure)
	w.bytes(pure)
	return nil
}

// encodePure returns the BCS form of a pure value.
func encodePure(v deploy.PureValue) ([]byte, error) {
	var w bcsWriter
	switch p := v.(type) {
	case deploy.PureU8:
		w.u8(uint8(p))
	case deploy.PureBytes:
		w.bytes(p)
	case deploy.PureAddress:
		w.fixed(p[:])
	case nil:
		return nil, fmt.Errorf("input has neither an object nor a pure value")
	default:
		return nil, fmt.Errorf("unsupported pure value %T", v)
	}
	return w.Bytes(), nil
}

func writeCommand(w *bcsWriter, c deploy.Command) error {
	switch c.Kind {
	case deploy.CommandMoveCall:
		w.variant(cmdMoveCall)
		w.fixed(c.Target.Package[:])
		w.str(c.Target.Module)
		w.str(c.Target.Function)
		w.length(0) // type arguments
		writeArguments(w, c.Arguments)
	case deploy.CommandTransferObjects:
		w.variant(cmdTransferObjects)
		writeArguments(w, c.Objects)
		writeArgument(w, c.Recipient)
	case deploy.CommandPublish:
		w.variant(cmdPublish)
		writeModules(w, c.Modules, c.Dependencies)
	case deploy.CommandUpgrade:
		w.variant(cmdUpgrade)
		writeModules(w, c.Modules, c.Dependencies)
		w.fixed(c.Package[:])
		writeArgument(w, c.Ticket)
	default:
		return fmt.Errorf("unsupported command %s", c.Kind)
	}
	return nil
}

func writeModules(w *bcsWriter, modules [][]byte, deps []deploy.ObjectID) {
	w.length(len(modules))
	for _, m := range modules {
		w.bytes(m)
	}
	w.length(len(deps))
	for _, d := range deps {
		w.fixed(d[:])
	}
}

func writeArguments(w *bcsWriter, args []deploy.Argument) {
	w.length(len(args))
	for _, a := range args {
		writeArgument(w, a)
	}
}

func writeArgument(w *bcsWriter, a deploy.Argument) {
	switch a.Kind {
	case deploy.ArgGasCoin:
		w.variant(argGasCoin)
	case deploy.ArgInput:
		w.variant(argInput)
		w.u16(a.Index)
	case deploy.ArgResult:
		w.variant(argResult)
		w.u16(a.Index)
	case deploy.ArgNestedResult:
		w.variant(argNestedResult)
		w.u16(a.Index)
		w.u16(a.Nested)
	}
}

func writeObjectRef(w *bcsWriter, ref ObjectRef) {
	w.fixed(ref.ID[:])
	w.u64(ref.Version)
	w.bytes(ref.Digest[:])
}
