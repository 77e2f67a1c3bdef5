package sui

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

type fakeReader struct {
	price     uint64
	objects   map[deploy.ObjectID]*ResolvedObject
	pages     map[string]*CoinPage
	coinCalls []string
}

func (r *fakeReader) ReferenceGasPrice(context.Context) (uint64, error) {
	return r.price, nil
}

func (r *fakeReader) GetObject(_ context.Context, id deploy.ObjectID) (*ResolvedObject, error) {
	obj, ok := r.objects[id]
	if !ok {
		return nil, errors.New("object not found")
	}
	return obj, nil
}

func (r *fakeReader) GetCoins(_ context.Context, _ deploy.Address, coinType, cursor string, _ int) (*CoinPage, error) {
	r.coinCalls = append(r.coinCalls, coinType+"@"+cursor)
	page, ok := r.pages[cursor]
	if !ok {
		return &CoinPage{}, nil
	}
	return page, nil
}

func coin(id string, balance uint64) Coin {
	return Coin{
		Ref:     ObjectRef{ID: deploy.MustParseObjectID(id), Version: 1},
		Balance: math.NewIntFromUint64(balance),
	}
}

func upgradeLikePlan(budget uint64) *deploy.TransactionPlan {
	plan := deploy.NewTransactionPlan(budget)
	capArg := plan.Object(capID)
	plan.Add(deploy.Command{
		Kind:      deploy.CommandTransferObjects,
		Objects:   []deploy.Argument{capArg},
		Recipient: plan.Pure(deploy.PureAddress(sender)),
	})
	return plan
}

func TestEncoder_Encode(t *testing.T) {
	reader := &fakeReader{
		price: 750,
		objects: map[deploy.ObjectID]*ResolvedObject{
			capID: {Ref: ObjectRef{ID: capID, Version: 4}},
		},
		pages: map[string]*CoinPage{
			"": {
				Coins:       []Coin{coin("0x1001", 400), coin("0x1002", 300)},
				NextCursor:  "page2",
				HasNextPage: true,
			},
			"page2": {Coins: []Coin{coin("0x1003", 500), coin("0x1004", 10_000)}},
		},
	}

	plan := upgradeLikePlan(1000)
	got, err := NewEncoder(reader, nil).Encode(context.Background(), plan, sender)
	require.NoError(t, err)

	want, err := EncodeTransactionData(plan,
		map[deploy.ObjectID]ResolvedObject{capID: *reader.objects[capID]},
		sender,
		GasData{
			Payment: []ObjectRef{
				coin("0x1001", 0).Ref,
				coin("0x1002", 0).Ref,
				coin("0x1003", 0).Ref,
			},
			Owner:  sender,
			Price:  750,
			Budget: 1000,
		})
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, []string{SUICoinType + "@", SUICoinType + "@page2"}, reader.coinCalls)
}

func TestEncoder_SkipsInputCoins(t *testing.T) {
	reader := &fakeReader{
		price: 1,
		objects: map[deploy.ObjectID]*ResolvedObject{
			capID: {Ref: ObjectRef{ID: capID}},
		},
		pages: map[string]*CoinPage{
			"": {Coins: []Coin{{Ref: ObjectRef{ID: capID}, Balance: math.NewInt(1_000_000)}, coin("0x1001", 10)}},
		},
	}

	plan := upgradeLikePlan(10)
	got, err := NewEncoder(reader, nil).Encode(context.Background(), plan, sender)
	require.NoError(t, err)

	want, err := EncodeTransactionData(plan,
		map[deploy.ObjectID]ResolvedObject{capID: {Ref: ObjectRef{ID: capID}}},
		sender,
		GasData{Payment: []ObjectRef{coin("0x1001", 0).Ref}, Owner: sender, Price: 1, Budget: 10})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncoder_InsufficientGas(t *testing.T) {
	reader := &fakeReader{
		objects: map[deploy.ObjectID]*ResolvedObject{capID: {Ref: ObjectRef{ID: capID}}},
		pages:   map[string]*CoinPage{"": {Coins: []Coin{coin("0x1001", 5)}}},
	}

	_, err := NewEncoder(reader, nil).Encode(context.Background(), upgradeLikePlan(deploy.DefaultGasBudget), sender)

	var serr *deploy.SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, deploy.StageEncode, serr.Stage)
	assert.Contains(t, serr.Message, "insufficient SUI")
}

func TestEncoder_UnknownObject(t *testing.T) {
	reader := &fakeReader{objects: map[deploy.ObjectID]*ResolvedObject{}}

	_, err := NewEncoder(reader, nil).Encode(context.Background(), upgradeLikePlan(10), sender)
	require.Error(t, err)
	assert.Contains(t, err.Error(), capID.String())
	assert.Empty(t, reader.coinCalls)
}
