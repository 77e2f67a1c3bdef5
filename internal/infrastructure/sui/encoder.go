package sui

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
	"github.com/altuslabsxyz/suideploy/internal/output"
)

const (
	// SUICoinType is the native coin used for gas.
	SUICoinType = "0x2::sui::SUI"

	// MaxGasPaymentObjects is the protocol limit on gas coins per transaction.
	MaxGasPaymentObjects = 256

	coinPageSize = 50
)

// Coin is a gas coin owned by the sender.
type Coin struct {
	Ref     ObjectRef
	Balance math.Int
}

// CoinPage is one page of suix_getCoins.
type CoinPage struct {
	Coins       []Coin
	NextCursor  string
	HasNextPage bool
}

// ChainReader is the read side of the fullnode API needed to encode a
// transaction.
type ChainReader interface {
	ReferenceGasPrice(ctx context.Context) (uint64, error)
	GetObject(ctx context.Context, id deploy.ObjectID) (*ResolvedObject, error)
	GetCoins(ctx context.Context, owner deploy.Address, coinType, cursor string, limit int) (*CoinPage, error)
}

// Encoder implements ports.TransactionEncoder. It resolves the current gas
// price, object versions and gas coins, then BCS-encodes the plan.
type Encoder struct {
	reader ChainReader
	logger *output.Logger
}

// NewEncoder creates an Encoder.
func NewEncoder(reader ChainReader, logger *output.Logger) *Encoder {
	if logger == nil {
		logger = output.DefaultLogger
	}
	return &Encoder{reader: reader, logger: logger}
}

// Encode returns the TransactionData bytes for plan sent by sender, who also
// pays for gas.
func (e *Encoder) Encode(ctx context.Context, plan *deploy.TransactionPlan, sender deploy.Address) ([]byte, error) {
	price, err := e.reader.ReferenceGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reference gas price: %w", err)
	}
	e.logger.Debug("Reference gas price: %d", price)

	objects := make(map[deploy.ObjectID]ResolvedObject)
	for _, id := range plan.ObjectInputs() {
		obj, err := e.reader.GetObject(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve object %s: %w", id, err)
		}
		objects[id] = *obj
		e.logger.Debug("Resolved %s at version %d", id, obj.Ref.Version)
	}

	payment, err := e.selectGas(ctx, sender, plan.GasBudget, objects)
	if err != nil {
		return nil, err
	}

	return EncodeTransactionData(plan, objects, sender, GasData{
		Payment: payment,
		Owner:   sender,
		Price:   price,
		Budget:  plan.GasBudget,
	})
}

// selectGas picks sender coins, in the order the node returns them, until
// their balance covers the budget. Coins used as transaction inputs are
// skipped.
func (e *Encoder) selectGas(ctx context.Context, sender deploy.Address, budget uint64, inputs map[deploy.ObjectID]ResolvedObject) ([]ObjectRef, error) {
	need := math.NewIntFromUint64(budget)
	total := math.ZeroInt()
	var payment []ObjectRef

	cursor := ""
	for {
		page, err := e.reader.GetCoins(ctx, sender, SUICoinType, cursor, coinPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to list gas coins: %w", err)
		}
		for _, c := range page.Coins {
			if _, used := inputs[c.Ref.ID]; used {
				continue
			}
			payment = append(payment, c.Ref)
			total = total.Add(c.Balance)
			if total.GTE(need) {
				e.logger.Debug("Selected %d gas coins, balance %s", len(payment), total)
				return payment, nil
			}
			if len(payment) == MaxGasPaymentObjects {
				return nil, &deploy.SubmissionError{
					Stage:   deploy.StageEncode,
					Message: fmt.Sprintf("%d gas coins only cover %s of the %d MIST budget; merge coins first", MaxGasPaymentObjects, total, budget),
				}
			}
		}
		if !page.HasNextPage || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	return nil, &deploy.SubmissionError{
		Stage:   deploy.StageEncode,
		Message: fmt.Sprintf("insufficient SUI for gas: %s has %s MIST, budget is %d", sender, total, budget),
	}
}
