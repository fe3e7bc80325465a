// Package testsupport builds throwaway stores for package tests.
package testsupport

import (
	"strings"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/db"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
)

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	gdb, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection keeps the shared memory database alive and
	// serialises writers like the row locks do on postgres
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func SeedSlot(t *testing.T, gdb *gorm.DB, slotTime string, capacity int) models.TimeSlot {
	t.Helper()
	slot := models.TimeSlot{SlotTime: slotTime, MaxCapacity: capacity, IsActive: true}
	require.NoError(t, gdb.Create(&slot).Error)
	return slot
}

func SeedService(t *testing.T, gdb *gorm.DB, name string, price int64) models.SpaService {
	t.Helper()
	svc := models.SpaService{Name: name, Price: price, DurationMin: 60, Active: true}
	require.NoError(t, gdb.Create(&svc).Error)
	return svc
}

// SeedAppointment inserts an appointment as is, bypassing capacity checks.
func SeedAppointment(t *testing.T, gdb *gorm.DB, ap models.Appointment) models.Appointment {
	t.Helper()
	if ap.PetName == "" {
		ap.PetName = "Milo"
	}
	if ap.PetType == "" {
		ap.PetType = "dog"
	}
	if ap.FullName == "" {
		ap.FullName = "Nguyen Van A"
	}
	if ap.PhoneNumber == "" {
		ap.PhoneNumber = "0901234567"
	}
	if ap.Status == "" {
		ap.Status = "pending"
	}
	if ap.PaymentStatus == "" {
		ap.PaymentStatus = "pending"
	}
	if ap.PaymentMethod == "" {
		ap.PaymentMethod = "cash"
	}
	require.NoError(t, gdb.Create(&ap).Error)
	return ap
}

func CountPayments(t *testing.T, gdb *gorm.DB, appointmentID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&models.Payment{}).Where("appointment_id = ?", appointmentID).Count(&n).Error)
	return n
}

// Notifier records notices instead of sending them.
type Notifier struct {
	mu      sync.Mutex
	notices []notification.Notice
}

func (n *Notifier) Notify(notice notification.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *Notifier) Notices() []notification.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Notice(nil), n.notices...)
}

// Auditor records audit events.
type Auditor struct {
	mu      sync.Mutex
	actions []string
}

func (a *Auditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, ev.Action)
}

func (a *Auditor) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}
