// Package rpc provides the Sui fullnode JSON-RPC client.
package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cosmossdk.io/math"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/mr-tron/base58"

	"github.com/altuslabsxyz/suideploy/internal/application/ports"
	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
	"github.com/altuslabsxyz/suideploy/internal/infrastructure/sui"
)

const (
	// DefaultTimeout bounds every HTTP round-trip.
	DefaultTimeout = 60 * time.Second

	// ExecuteRequestType waits until the fullnode has applied the effects.
	ExecuteRequestType = "WaitForLocalExecution"

	upgradeCapSuffix = "::package::UpgradeCap"
)

// SuiClient talks to a Sui fullnode over JSON-RPC 2.0. It implements
// ports.ChainClient and sui.ChainReader.
type SuiClient struct {
	endpoint string
	client   *gethrpc.Client
}

// NewSuiClient dials endpoint. For HTTP endpoints no connection is made until
// the first call.
func NewSuiClient(ctx context.Context, endpoint string, timeout time.Duration) (*SuiClient, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c, err := gethrpc.DialOptions(ctx, endpoint, gethrpc.WithHTTPClient(&http.Client{Timeout: timeout}))
	if err != nil {
		return nil, &ConnectionError{Endpoint: endpoint, Message: err.Error()}
	}
	return &SuiClient{endpoint: endpoint, client: c}, nil
}

// Endpoint returns the URL the client was created with.
func (c *SuiClient) Endpoint() string {
	return c.endpoint
}

// Close releases the underlying client.
func (c *SuiClient) Close() {
	c.client.Close()
}

func (c *SuiClient) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	err := c.client.CallContext(ctx, result, method, args...)
	if err == nil {
		return nil
	}

	rerr := &RPCError{Operation: method, Message: err.Error(), Err: err}
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		rerr.Code = rpcErr.ErrorCode()
	}
	var httpErr gethrpc.HTTPError
	if errors.As(err, &httpErr) {
		rerr.Code = httpErr.StatusCode
		if body := strings.TrimSpace(string(httpErr.Body)); body != "" {
			rerr.Message = fmt.Sprintf("HTTP %s: %s", httpErr.Status, body)
		}
	}
	return rerr
}

// Wire types. Sui encodes 64-bit integers as decimal strings.

type bigString string

func (s *bigString) UnmarshalJSON(data []byte) error {
	*s = bigString(strings.Trim(string(data), `"`))
	return nil
}

func (s bigString) uint64() (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(string(s), 10, 64)
}

type statusJSON struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type gasUsedJSON struct {
	ComputationCost         bigString `json:"computationCost"`
	StorageCost             bigString `json:"storageCost"`
	StorageRebate           bigString `json:"storageRebate"`
	NonRefundableStorageFee bigString `json:"nonRefundableStorageFee"`
}

type effectsJSON struct {
	Status            *statusJSON  `json:"status"`
	GasUsed           *gasUsedJSON `json:"gasUsed"`
	TransactionDigest string       `json:"transactionDigest"`
}

type objectChangeJSON struct {
	Type       string `json:"type"`
	PackageID  string `json:"packageId,omitempty"`
	ObjectID   string `json:"objectId,omitempty"`
	ObjectType string `json:"objectType,omitempty"`
}

type transactionBlockJSON struct {
	Digest        string             `json:"digest"`
	Effects       *effectsJSON       `json:"effects"`
	ObjectChanges []objectChangeJSON `json:"objectChanges"`
	Errors        []string           `json:"errors"`
}

func (t *transactionBlockJSON) toResponse() (*ports.TransactionResponse, error) {
	resp := &ports.TransactionResponse{Digest: t.Digest}
	if t.Effects != nil {
		if t.Effects.Status != nil {
			resp.Status = &deploy.ExecutionStatus{Status: t.Effects.Status.Status, Error: t.Effects.Status.Error}
		}
		if t.Effects.GasUsed != nil {
			gas, err := t.Effects.GasUsed.toSummary()
			if err != nil {
				return nil, err
			}
			resp.GasUsed = gas
		}
		if resp.Digest == "" {
			resp.Digest = t.Effects.TransactionDigest
		}
	}
	for _, ch := range t.ObjectChanges {
		switch {
		case ch.Type == "published":
			resp.PackageID = ch.PackageID
		case strings.HasSuffix(ch.ObjectType, upgradeCapSuffix):
			resp.UpgradeCapID = ch.ObjectID
		}
	}
	return resp, nil
}

func (g *gasUsedJSON) toSummary() (*deploy.GasSummary, error) {
	var (
		s   deploy.GasSummary
		err error
	)
	if s.ComputationCost, err = g.ComputationCost.uint64(); err != nil {
		return nil, fmt.Errorf("computationCost: %w", err)
	}
	if s.StorageCost, err = g.StorageCost.uint64(); err != nil {
		return nil, fmt.Errorf("storageCost: %w", err)
	}
	if s.StorageRebate, err = g.StorageRebate.uint64(); err != nil {
		return nil, fmt.Errorf("storageRebate: %w", err)
	}
	if s.NonRefundableStorageFee, err = g.NonRefundableStorageFee.uint64(); err != nil {
		return nil, fmt.Errorf("nonRefundableStorageFee: %w", err)
	}
	return &s, nil
}

// DryRun simulates txBytes without committing.
func (c *SuiClient) DryRun(ctx context.Context, txBytes []byte) (*ports.TransactionResponse, error) {
	var out transactionBlockJSON
	if err := c.call(ctx, &out, "sui_dryRunTransactionBlock", base64.StdEncoding.EncodeToString(txBytes)); err != nil {
		return nil, err
	}
	resp, err := out.toResponse()
	if err != nil {
		return nil, &RPCError{Operation: "sui_dryRunTransactionBlock", Message: err.Error(), Err: err}
	}
	return resp, nil
}

type responseOptions struct {
	ShowEffects       bool `json:"showEffects"`
	ShowObjectChanges bool `json:"showObjectChanges"`
}

// Execute submits signed txBytes and waits for local execution.
func (c *SuiClient) Execute(ctx context.Context, txBytes []byte, signatures []string) (*ports.TransactionResponse, error) {
	var out transactionBlockJSON
	err := c.call(ctx, &out, "sui_executeTransactionBlock",
		base64.StdEncoding.EncodeToString(txBytes),
		signatures,
		responseOptions{ShowEffects: true, ShowObjectChanges: true},
		ExecuteRequestType,
	)
	if err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, &RPCError{Operation: "sui_executeTransactionBlock", Message: strings.Join(out.Errors, "; ")}
	}
	resp, err := out.toResponse()
	if err != nil {
		return nil, &RPCError{Operation: "sui_executeTransactionBlock", Message: err.Error(), Err: err}
	}
	return resp, nil
}

// ReferenceGasPrice returns the current epoch's reference gas price.
func (c *SuiClient) ReferenceGasPrice(ctx context.Context) (uint64, error) {
	var price bigString
	if err := c.call(ctx, &price, "suix_getReferenceGasPrice"); err != nil {
		return 0, err
	}
	v, err := price.uint64()
	if err != nil {
		return 0, &RPCError{Operation: "suix_getReferenceGasPrice", Message: "failed to parse price", Err: err}
	}
	return v, nil
}

type objectResponseJSON struct {
	Data *struct {
		ObjectID string          `json:"objectId"`
		Version  bigString       `json:"version"`
		Digest   string          `json:"digest"`
		Owner    json.RawMessage `json:"owner"`
	} `json:"data"`
	Error *struct {
		Code     string `json:"code"`
		ObjectID string `json:"object_id"`
	} `json:"error"`
}

type sharedOwnerJSON struct {
	Shared *struct {
		InitialSharedVersion bigString `json:"initial_shared_version"`
	} `json:"Shared"`
}

// GetObject returns the latest reference of id and whether it is shared.
func (c *SuiClient) GetObject(ctx context.Context, id deploy.ObjectID) (*sui.ResolvedObject, error) {
	var out objectResponseJSON
	opts := map[string]bool{"showOwner": true}
	if err := c.call(ctx, &out, "sui_getObject", id.String(), opts); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, &NotFoundError{Resource: id.String(), Reason: out.Error.Code}
	}
	if out.Data == nil {
		return nil, &NotFoundError{Resource: id.String()}
	}

	ref, err := parseObjectRef(out.Data.ObjectID, out.Data.Version, out.Data.Digest)
	if err != nil {
		return nil, &RPCError{Operation: "sui_getObject", Message: err.Error(), Err: err}
	}
	obj := &sui.ResolvedObject{Ref: ref}

	var owner sharedOwnerJSON
	if len(out.Data.Owner) > 0 && out.Data.Owner[0] == '{' {
		if err := json.Unmarshal(out.Data.Owner, &owner); err != nil {
			return nil, &RPCError{Operation: "sui_getObject", Message: "failed to parse owner", Err: err}
		}
	}
	if owner.Shared != nil {
		v, err := owner.Shared.InitialSharedVersion.uint64()
		if err != nil {
			return nil, &RPCError{Operation: "sui_getObject", Message: "failed to parse initial shared version", Err: err}
		}
		obj.Shared = true
		obj.InitialSharedVersion = v
	}
	return obj, nil
}

type coinPageJSON struct {
	Data []struct {
		CoinObjectID string    `json:"coinObjectId"`
		Version      bigString `json:"version"`
		Digest       string    `json:"digest"`
		Balance      bigString `json:"balance"`
	} `json:"data"`
	NextCursor  *string `json:"nextCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

// GetCoins lists one page of owner's coins of coinType.
func (c *SuiClient) GetCoins(ctx context.Context, owner deploy.Address, coinType, cursor string, limit int) (*sui.CoinPage, error) {
	var cursorArg interface{}
	if cursor != "" {
		cursorArg = cursor
	}

	var out coinPageJSON
	if err := c.call(ctx, &out, "suix_getCoins", owner.String(), coinType, cursorArg, limit); err != nil {
		return nil, err
	}

	page := &sui.CoinPage{HasNextPage: out.HasNextPage}
	if out.NextCursor != nil {
		page.NextCursor = *out.NextCursor
	}
	for _, d := range out.Data {
		ref, err := parseObjectRef(d.CoinObjectID, d.Version, d.Digest)
		if err != nil {
			return nil, &RPCError{Operation: "suix_getCoins", Message: err.Error(), Err: err}
		}
		balance, ok := math.NewIntFromString(string(d.Balance))
		if !ok {
			return nil, &RPCError{Operation: "suix_getCoins", Message: fmt.Sprintf("invalid balance %q", d.Balance)}
		}
		page.Coins = append(page.Coins, sui.Coin{Ref: ref, Balance: balance})
	}
	return page, nil
}

func parseObjectRef(id string, version bigString, digest string) (sui.ObjectRef, error) {
	var ref sui.ObjectRef
	oid, err := deploy.ParseObjectID(id)
	if err != nil {
		return ref, err
	}
	v, err := version.uint64()
	if err != nil {
		return ref, fmt.Errorf("invalid version %q: %w", version, err)
	}
	d, err := base58.Decode(digest)
	if err != nil {
		return ref, fmt.Errorf("invalid digest %q: %w", digest, err)
	}
	if len(d) != sui.DigestLength {
		return ref, fmt.Errorf("digest %q has %d bytes, want %d", digest, len(d), sui.DigestLength)
	}
	ref.ID = oid
	ref.Version = v
	copy(ref.Digest[:], d)
	return ref, nil
}
