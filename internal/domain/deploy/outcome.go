package deploy

import (
	"time"

	"cosmossdk.io/math"
)

// StatusSuccess is the status string the chain reports for successful effects.
const StatusSuccess = "success"

// ExecutionStatus is the status field of transaction effects.
type ExecutionStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Succeeded reports whether the status is present and successful.
func (s *ExecutionStatus) Succeeded() bool {
	return s != nil && s.Status == StatusSuccess
}

func (s *ExecutionStatus) String() string {
	if s == nil {
		return "unknown"
	}
	if s.Error != "" {
		return s.Status + ": " + s.Error
	}
	return s.Status
}

// GasSummary is the gas cost breakdown reported in effects, in MIST.
type GasSummary struct {
	ComputationCost         uint64 `json:"computationCost"`
	StorageCost             uint64 `json:"storageCost"`
	StorageRebate           uint64 `json:"storageRebate"`
	NonRefundableStorageFee uint64 `json:"nonRefundableStorageFee"`
}

// Net is computation + storage - rebate. It is negative when the rebate
// exceeds the charges.
func (g GasSummary) Net() math.Int {
	return math.NewIntFromUint64(g.ComputationCost).
		Add(math.NewIntFromUint64(g.StorageCost)).
		Sub(math.NewIntFromUint64(g.StorageRebate))
}

// OutcomeReport summarizes one gated submission.
type OutcomeReport struct {
	RunID   string  `json:"runId"`
	Kind    Kind    `json:"kind"`
	Network string  `json:"network,omitempty"`
	Sender  Address `json:"sender"`

	PredictedStatus *ExecutionStatus `json:"predictedStatus,omitempty"`
	PredictedGas    *GasSummary      `json:"predictedGas,omitempty"`

	Executed          bool             `json:"executed"`
	ExecutedStatus    *ExecutionStatus `json:"executedStatus,omitempty"`
	GasUsed           *GasSummary      `json:"gasUsed,omitempty"`
	TransactionDigest string           `json:"transactionDigest,omitempty"`
	PackageID         string           `json:"packageId,omitempty"`
	UpgradeCapID      string           `json:"upgradeCapId,omitempty"`

	Aborted     bool   `json:"aborted"`
	AbortReason string `json:"abortReason,omitempty"`
}

// DeploymentRecord is what the ledger keeps about an executed deployment.
type DeploymentRecord struct {
	RunID             string      `json:"runId"`
	Kind              Kind        `json:"kind"`
	Network           string      `json:"network"`
	Sender            string      `json:"sender"`
	PackageID         string      `json:"packageId,omitempty"`
	UpgradeCapID      string      `json:"upgradeCapId,omitempty"`
	TransactionDigest string      `json:"transactionDigest"`
	Status            string      `json:"status"`
	GasUsed           *GasSummary `json:"gasUsed,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
}

// NewDeploymentRecord derives a ledger record from an executed report.
func NewDeploymentRecord(r *OutcomeReport, now time.Time) *DeploymentRecord {
	return &DeploymentRecord{
		RunID:             r.RunID,
		Kind:              r.Kind,
		Network:           r.Network,
		Sender:            r.Sender.String(),
		PackageID:         r.PackageID,
		UpgradeCapID:      r.UpgradeCapID,
		TransactionDigest: r.TransactionDigest,
		Status:            r.ExecutedStatus.String(),
		GasUsed:           r.GasUsed,
		CreatedAt:         now.UTC(),
	}
}
