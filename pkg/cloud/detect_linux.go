//go:build linux

package cloud

import (
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Detect classifies the host. Missing or unreadable files count as no
// signal; Detect never fails and falls back to KindUnknown.
func (d *Detector) Detect() Kind {
	// Google Cloud and Amazon (hvm/nitro) both brand the BIOS.
	bios := readFile(filepath.Join(d.SysRoot, "devices", "virtual", "dmi", "id", "bios_version"))
	if k, ok := kindFromBIOS(bios); ok {
		return k
	}

	for _, lease := range d.LeaseFiles {
		if strings.Contains(readFile(lease), azureLeaseOption) {
			return KindAzure
		}
	}

	log.Debug("no cloud provider signal found")
	return KindUnknown
}
