package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"movie-wallet/internal/core/domain"
	"movie-wallet/internal/core/ports"

	"github.com/google/uuid"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DeviceServiceImpl implements ports.DeviceService. Every value it produces is
// random and identifies nothing.
type DeviceServiceImpl struct {
	docs         ports.DocumentTransactor
	defaultOwner string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDeviceService creates a device service. rng may be nil.
func NewDeviceService(docs ports.DocumentTransactor, defaultOwner string, rng *rand.Rand) *DeviceServiceImpl {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &DeviceServiceImpl{docs: docs, defaultOwner: defaultOwner, rng: rng}
}

// Ping records a fresh synthetic fingerprint for the caller.
func (s *DeviceServiceImpl) Ping(ctx context.Context, req ports.DevicePingRequest) (*domain.DeviceFingerprint, error) {
	owner := strings.TrimSpace(req.Owner)
	if owner == "" {
		owner = s.defaultOwner
	}

	fp := s.fingerprint(req.UserAgent, owner)
	err := s.docs.Update(ctx, func(doc *domain.Document) error {
		doc.DeviceTracking = append(doc.DeviceTracking, fp)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &fp, nil
}

// List returns every recorded fingerprint, oldest first.
func (s *DeviceServiceImpl) List(ctx context.Context) ([]domain.DeviceFingerprint, error) {
	doc, err := s.docs.View(ctx)
	if err != nil {
		return nil, err
	}
	return doc.DeviceTracking, nil
}

func (s *DeviceServiceImpl) fingerprint(userAgent, owner string) domain.DeviceFingerprint {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.DeviceFingerprint{
		ID: uuid.New(),
		IP: fmt.Sprintf("%d.%d.%d.%d",
			s.rng.IntN(255), s.rng.IntN(255), s.rng.IntN(255), s.rng.IntN(255)),
		DeviceName: DeviceLabel(userAgent),
		DeviceID:   "DEV-" + s.randomString(base36Upper, 9),
		IMEI:       "SIM-" + s.randomString("0123456789", 15),
		LastAccess: time.Now().UTC(),
		Owner:      owner,
	}
}

func (s *DeviceServiceImpl) randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[s.rng.IntN(len(alphabet))])
	}
	return b.String()
}

// DeviceLabel derives a coarse device label from a User-Agent header.
func DeviceLabel(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Windows"):
		return "Windows Device"
	case strings.Contains(userAgent, "Android"):
		return "Android Device"
	case strings.Contains(userAgent, "iPhone"),
		strings.Contains(userAgent, "iPad"),
		strings.Contains(userAgent, "iOS"):
		return "iOS Device"
	case strings.Contains(userAgent, "Mac"):
		return "Mac Device"
	default:
		return "Unknown Device"
	}
}
