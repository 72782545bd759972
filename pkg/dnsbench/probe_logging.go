package dnsbench

import (
	"time"

	"github.com/apex/log"
)

func logProbe(logger log.Interface, provider *Provider, server, domain string, dur time.Duration, err error) {
	entry := logger.WithFields(log.Fields{
		"provider": provider.Name,
		"server":   server,
		"domain":   domain,
		"duration": dur,
	})
	if err != nil {
		entry.WithError(err).Debug("probe failed")
		return
	}
	entry.Debug("probe succeeded")
}
