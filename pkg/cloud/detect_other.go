//go:build !linux

package cloud

import (
	"runtime"

	log "github.com/sirupsen/logrus"
)

// Detect always returns KindUnknown outside Linux.
func (d *Detector) Detect() Kind {
	log.Warnf("cloud detection is implemented for linux only, not %s", runtime.GOOS)
	return KindUnknown
}
