package deploy

import (
	"encoding/base64"
	"fmt"
)

// BuildOutput is the compiled form of a Move package.
type BuildOutput struct {
	// Modules holds base64 encoded module bytecode in compiler order.
	Modules      []string `json:"modules"`
	Dependencies []string `json:"dependencies"`
	// Digest is only emitted for builds that can authorize an upgrade.
	Digest []byte `json:"digest,omitempty"`
}

// ModuleBytes decodes the base64 module blobs.
func (b *BuildOutput) ModuleBytes() ([][]byte, error) {
	out := make([][]byte, 0, len(b.Modules))
	for i, m := range b.Modules {
		raw, err := base64.StdEncoding.DecodeString(m)
		if err != nil {
			return nil, fmt.Errorf("module %d is not valid base64: %w", i, err)
		}
		out = append(out, raw)
	}
	return out, nil
}

// DependencyIDs parses the dependency package ids.
func (b *BuildOutput) DependencyIDs() ([]ObjectID, error) {
	out := make([]ObjectID, 0, len(b.Dependencies))
	for _, d := range b.Dependencies {
		id, err := ParseObjectID(d)
		if err != nil {
			return nil, fmt.Errorf("dependency %q: %w", d, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// Check verifies the output is usable. requireDigest is set for upgrade builds.
func (b *BuildOutput) Check(requireDigest bool) error {
	if len(b.Modules) == 0 {
		return fmt.Errorf("no modules in build output")
	}
	if _, err := b.ModuleBytes(); err != nil {
		return err
	}
	if _, err := b.DependencyIDs(); err != nil {
		return err
	}
	if requireDigest && len(b.Digest) == 0 {
		return fmt.Errorf("build output has no digest")
	}
	return nil
}
