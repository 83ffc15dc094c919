package services

import (
	"context"
	"fmt"
	"time"

	"sysreport/internal/models"

	"github.com/distatus/battery"
)

// Battery reports the first battery the platform exposes, or nil when
// there is none. Errors reading an individual battery are treated the same
// as having no battery.
func (p *HostProbe) Battery(ctx context.Context) (*models.Battery, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		p.logger.Debug("battery query reported errors", "error", err)
	}
	for _, b := range batteries {
		if status := batteryStatus(b); status != nil {
			return status, nil
		}
	}
	return nil, nil
}

// batteryStatus converts a platform battery reading. Readings without a
// usable full-charge capacity yield nil.
func batteryStatus(b *battery.Battery) *models.Battery {
	if b == nil || b.Full <= 0 {
		return nil
	}

	percent := b.Current / b.Full * 100
	if percent > 100 {
		percent = 100
	}

	status := &models.Battery{
		Percent:     round1(percent),
		PowerSource: models.PowerSourceAC,
	}

	if b.State.Raw == battery.Discharging || b.State.Raw == battery.Empty {
		status.PowerSource = models.PowerSourceBattery
		if b.ChargeRate > 0 {
			hours := b.Current / b.ChargeRate
			status.TimeLeft = formatTimeLeft(time.Duration(hours * float64(time.Hour)))
		}
	}

	return status
}

// formatTimeLeft renders a duration as "2h 05m".
func formatTimeLeft(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
