package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeviceFingerprint is a synthetic device record. None of its values
// identify a real device.
type DeviceFingerprint struct {
	ID         uuid.UUID `json:"id"`
	IP         string    `json:"ip"`
	DeviceName string    `json:"deviceName"`
	DeviceID   string    `json:"deviceId"`
	IMEI       string    `json:"imei"`
	LastAccess time.Time `json:"lastAccess"`
	Owner      string    `json:"owner"`
}
