package deploy

import (
	"fmt"
	"strings"
)

// Kind names a deployment workflow.
type Kind string

const (
	KindPublish Kind = "publish"
	KindUpgrade Kind = "upgrade"
)

// UpgradePolicy is the policy passed to 0x2::package::authorize_upgrade.
type UpgradePolicy uint8

const (
	PolicyCompatible UpgradePolicy = 0
	PolicyAdditive   UpgradePolicy = 128
	PolicyDepOnly    UpgradePolicy = 192
)

// ParseUpgradePolicy accepts "compatible", "additive" or "dep_only".
func ParseUpgradePolicy(s string) (UpgradePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compatible":
		return PolicyCompatible, nil
	case "additive":
		return PolicyAdditive, nil
	case "dep_only", "dep-only", "deponly":
		return PolicyDepOnly, nil
	default:
		return 0, &ValidationError{Field: "upgrade_policy", Message: fmt.Sprintf("unknown policy %q", s)}
	}
}

func (p UpgradePolicy) String() string {
	switch p {
	case PolicyCompatible:
		return "compatible"
	case PolicyAdditive:
		return "additive"
	case PolicyDepOnly:
		return "dep_only"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// Spec selects the workflow a pipeline run performs.
type Spec interface {
	Kind() Kind
	// SourcePath is the Move package directory handed to the compiler.
	SourcePath() string
	Validate() error
}

// PublishSpec publishes a package for the first time.
type PublishSpec struct {
	PackagePath string
}

func (s PublishSpec) Kind() Kind         { return KindPublish }
func (s PublishSpec) SourcePath() string { return s.PackagePath }

func (s PublishSpec) Validate() error {
	if strings.TrimSpace(s.PackagePath) == "" {
		return &ValidationError{Field: "package_path", Message: "is required"}
	}
	return nil
}

// UpgradeSpec upgrades an existing package using its UpgradeCap.
type UpgradeSpec struct {
	PackagePath  string
	CapabilityID ObjectID
	PackageID    ObjectID
	Policy       UpgradePolicy
}

func (s UpgradeSpec) Kind() Kind         { return KindUpgrade }
func (s UpgradeSpec) SourcePath() string { return s.PackagePath }

func (s UpgradeSpec) Validate() error {
	if strings.TrimSpace(s.PackagePath) == "" {
		return &ValidationError{Field: "package_path", Message: "is required"}
	}
	if s.CapabilityID.IsZero() {
		return &ValidationError{Field: "UPGRADE_CAP", Message: "upgrade capability object id is required"}
	}
	if s.PackageID.IsZero() {
		return &ValidationError{Field: "PACKAGE_ID", Message: "package id is required"}
	}
	switch s.Policy {
	case PolicyCompatible, PolicyAdditive, PolicyDepOnly:
	default:
		return &ValidationError{Field: "upgrade_policy", Message: fmt.Sprintf("unsupported policy %d", uint8(s.Policy))}
	}
	return nil
}

// NewUpgradeSpec parses the capability and package ids as read from the
// environment and validates the result.
func NewUpgradeSpec(packagePath, capabilityHex, packageHex string, policy UpgradePolicy) (UpgradeSpec, error) {
	spec := UpgradeSpec{PackagePath: packagePath, Policy: policy}

	if strings.TrimSpace(capabilityHex) == "" {
		return spec, &ValidationError{Field: "UPGRADE_CAP", Message: "upgrade capability object id is required"}
	}
	capID, err := ParseObjectID(capabilityHex)
	if err != nil {
		return spec, &ValidationError{Field: "UPGRADE_CAP", Message: err.Error()}
	}
	spec.CapabilityID = capID

	if strings.TrimSpace(packageHex) == "" {
		return spec, &ValidationError{Field: "PACKAGE_ID", Message: "package id is required"}
	}
	pkgID, err := ParseObjectID(packageHex)
	if err != nil {
		return spec, &ValidationError{Field: "PACKAGE_ID", Message: err.Error()}
	}
	spec.PackageID = pkgID

	return spec, spec.Validate()
}
