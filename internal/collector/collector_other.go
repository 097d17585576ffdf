//go:build !windows && !linux

package collector

import "github.com/volscan/volscan/internal/volume"

// Provider is a no-op on platforms without a rich device-management
// interface; classification falls back to device-type defaults.
type Provider struct{}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Attributes(mountPoint, device string) *volume.DeviceAttributes {
	return nil
}
