// Package scanner enumerates the storage volumes visible to the operating
// system. Each Scan call produces an independent snapshot: nothing is
// cached or shared between calls, so concurrent callers need no
// coordination beyond what the OS itself provides.
package scanner

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/volscan/volscan/internal/config"
	"github.com/volscan/volscan/internal/volume"
)

// Scan lists all mount points, enriches them with best-effort device
// attributes, and classifies each one. Per-volume failures degrade to
// not-ready records or missing attributes; only a failure to enumerate at
// all is returned as an error.
func Scan(cfg *config.Config) ([]volume.Volume, error) {
	vols, err := scan(cfg)
	if err != nil {
		return nil, fmt.Errorf("volume enumeration failed: %w", err)
	}

	sort.Slice(vols, func(i, j int) bool { return vols[i].MountPoint < vols[j].MountPoint })

	for i := range vols {
		vols[i].MountType = volume.Classify(&vols[i])
		if vols[i].MountType == volume.MountUnknown {
			log.WithFields(log.Fields{
				"mount":       vols[i].MountPoint,
				"device_type": vols[i].DeviceType,
			}).Warn("no classification rule matched")
		}
	}

	return vols, nil
}
