package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/repository"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/testsupport"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

const bookingDate = "2025-06-01"

type fixture struct {
	deps     Deps
	db       *gorm.DB
	notifier *testsupport.Notifier
	auditor  *testsupport.Auditor
	bath     models.SpaService
	haircut  models.SpaService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gdb := testsupport.NewDB(t)

	now := time.Date(2025, 5, 30, 10, 0, 0, 0, timezone.Location(timezone.DefaultTimezone))
	f := fixture{
		db:       gdb,
		notifier: &testsupport.Notifier{},
		auditor:  &testsupport.Auditor{},
	}
	f.deps = Deps{
		Repo:     repository.NewAppointmentGormRepository(gdb),
		Audit:    f.auditor,
		Notifier: f.notifier,
		Clock:    timezone.Fixed(now, timezone.DefaultTimezone),
		Log:      zerolog.Nop(),
	}
	f.bath = testsupport.SeedService(t, gdb, "Bath", 200000)
	f.haircut = testsupport.SeedService(t, gdb, "Haircut", 300000)
	return f
}

func (f fixture) input(clock string) CreateInput {
	return CreateInput{
		PetName:     "Milo",
		PetType:     "dog",
		Date:        bookingDate,
		Time:        clock,
		FullName:    "Nguyen Van A",
		PhoneNumber: "0901234567",
		Email:       "a@example.com",
		ServiceIDs:  []uint{f.bath.ID, f.haircut.ID},
	}
}

func (f fixture) seedBooked(t *testing.T, clock, status string) models.Appointment {
	return testsupport.SeedAppointment(t, f.db, models.Appointment{
		AppointmentDate: bookingDate,
		AppointmentTime: clock,
		Status:          status,
		TotalAmount:     500000,
	})
}

func requireBusiness(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, httperr.KindOf(err), err.Error())
	assert.True(t, httperr.IsBusiness(err, code), err.Error())
}

// ======================================================
// Create
// ======================================================

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.input("9:00"))
	require.NoError(t, err)

	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "pending", ap.PaymentStatus)
	assert.Equal(t, "cash", ap.PaymentMethod)
	assert.Equal(t, "09:00:00", ap.AppointmentTime)
	assert.Equal(t, int64(500000), ap.TotalAmount)
	assert.Equal(t, "APT-0001", ap.Code())
	require.Len(t, ap.Services, 2)
	assert.Equal(t, "Bath", ap.Services[0].ServiceName)
	assert.Equal(t, int64(200000), ap.Services[0].Price)

	notices := f.notifier.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, notification.KindBookingConfirmation, notices[0].Kind)
	assert.Equal(t, "a@example.com", notices[0].To)
	assert.Contains(t, f.auditor.Actions(), "appointment_created")
}

func TestCreateAppointmentSnapshotsCatalogPrice(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)

	in := f.input("09:00")
	in.ServiceIDs = []uint{f.bath.ID}
	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&models.SpaService{}).Where("id = ?", f.bath.ID).Update("price", 999000).Error)

	var line models.AppointmentService
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).First(&line).Error)
	assert.Equal(t, int64(200000), line.Price)
}

func TestCreateAppointmentWithoutEmailSkipsNotification(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)

	in := f.input("09:00")
	in.Email = ""
	_, err := NewCreateAppointment(f.deps).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, f.notifier.Notices())
}

func TestCreateAppointmentValidation(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)
	uc := NewCreateAppointment(f.deps)

	t.Run("empty services", func(t *testing.T) {
		in := f.input("09:00")
		in.ServiceIDs = nil
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "missing_required_fields")

		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, []string{"services"}, be.Fields)
	})

	t.Run("missing fields are listed", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateInput{ServiceIDs: []uint{f.bath.ID}})
		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, []string{"pet_name", "pet_type", "date", "time", "full_name", "phone_number"}, be.Fields)
	})

	t.Run("bad pet type", func(t *testing.T) {
		in := f.input("09:00")
		in.PetType = "parrot"
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "invalid_pet_type")
	})

	t.Run("bad date", func(t *testing.T) {
		in := f.input("09:00")
		in.Date = "2025-02-30"
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "invalid_date")
	})

	t.Run("unknown service", func(t *testing.T) {
		in := f.input("09:00")
		in.ServiceIDs = []uint{f.bath.ID, 999}
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "unknown_service")
	})

	t.Run("in the past", func(t *testing.T) {
		in := f.input("09:00")
		in.Date = "2025-05-30"
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "appointment_in_past")
	})

	t.Run("bad payment method", func(t *testing.T) {
		in := f.input("09:00")
		in.PaymentMethod = "bitcoin"
		_, err := uc.Execute(context.Background(), in)
		requireBusiness(t, err, httperr.KindValidation, "invalid_payment_method")
	})

	t.Run("no active slot at that time", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), f.input("10:00"))
		requireBusiness(t, err, httperr.KindConflict, "slot_unavailable")
	})

	var count int64
	require.NoError(t, f.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAppointmentMapsVNPayToEWallet(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)

	in := f.input("09:00")
	in.PaymentMethod = "vnpay"
	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "e-wallet", ap.PaymentMethod)
	assert.Equal(t, "VNPAY", f.notifier.Notices()[0].Appointment.PaymentMethod)
}

// ======================================================
// Capacity
// ======================================================

func TestFullSlotScenario(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)
	f.seedBooked(t, "09:00:00", "pending")
	f.seedBooked(t, "09:00:00", "pending")
	f.seedBooked(t, "09:00:00", "cancelled")

	avail, err := NewGetAvailability(f.deps.Repo).Execute(context.Background(), bookingDate)
	require.NoError(t, err)

	got := avail["09:00"]
	assert.Equal(t, 2, got.Capacity)
	assert.Equal(t, 2, got.Booked)
	assert.Equal(t, 0, got.Remaining)

	_, err = NewCreateAppointment(f.deps).Execute(context.Background(), f.input("09:00"))
	requireBusiness(t, err, httperr.KindConflict, "slot_full")
	assert.Contains(t, f.auditor.Actions(), "capacity_rejected")
	assert.Empty(t, f.notifier.Notices())
}

func TestAvailabilityIsNotClamped(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 1)
	testsupport.SeedSlot(t, f.db, "14:30:00", 3)
	f.seedBooked(t, "09:00:00", "confirmed")
	f.seedBooked(t, "09:00:00", "completed")

	avail, err := NewGetAvailability(f.deps.Repo).Execute(context.Background(), bookingDate)
	require.NoError(t, err)

	assert.Equal(t, domain.SlotAvailability{SlotID: avail["09:00"].SlotID, TimeSlot: "09:00:00", Capacity: 1, Booked: 2, Remaining: -1}, avail["09:00"])
	assert.Equal(t, 3, avail["14:30"].Remaining)

	_, err = NewGetAvailability(f.deps.Repo).Execute(context.Background(), "01-06-2025")
	requireBusiness(t, err, httperr.KindValidation, "invalid_date")
}

func TestConcurrentBookingsNeverExceedCapacity(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)
	uc := NewCreateAppointment(f.deps)

	const attempts = 6
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), f.input("09:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, "slot_full"):
				full++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, ok)
	assert.Equal(t, attempts-2, full)
}

// ======================================================
// Status, restore, reschedule
// ======================================================

func TestUpdateStatusOutOfCancelledNeedsSeat(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 1)
	f.seedBooked(t, "09:00:00", "pending")
	cancelled := f.seedBooked(t, "09:00:00", "cancelled")
	uc := NewUpdateStatus(f.deps)

	_, err := uc.Execute(context.Background(), cancelled.ID, "confirmed")
	requireBusiness(t, err, httperr.KindConflict, "slot_full")

	_, err = uc.Execute(context.Background(), cancelled.ID, "archived")
	requireBusiness(t, err, httperr.KindValidation, "invalid_status")

	_, err = uc.Execute(context.Background(), 999, "confirmed")
	requireBusiness(t, err, httperr.KindNotFound, "appointment_not_found")

	_, err = uc.Execute(context.Background(), cancelled.ID, "completed")
	requireBusiness(t, err, httperr.KindConflict, "slot_full")

	ap, err := uc.Execute(context.Background(), cancelled.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
}

func TestUpdateStatusFreeTransitions(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 1)
	booked := f.seedBooked(t, "09:00:00", "completed")
	uc := NewUpdateStatus(f.deps)

	for _, status := range []string{"pending", "cancelled", "confirmed", "completed"} {
		ap, err := uc.Execute(context.Background(), booked.ID, status)
		require.NoError(t, err, status)
		assert.Equal(t, status, ap.Status)
	}
	assert.Contains(t, f.auditor.Actions(), "appointment_status_changed")
}

func TestRestoreAppointment(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 1)
	uc := NewRestoreAppointment(f.deps)

	t.Run("future with a free seat", func(t *testing.T) {
		ap := f.seedBooked(t, "09:00:00", "cancelled")
		restored, err := uc.Execute(context.Background(), ap.ID)
		require.NoError(t, err)
		assert.Equal(t, "pending", restored.Status)
	})

	t.Run("slot is full now", func(t *testing.T) {
		ap := f.seedBooked(t, "09:00:00", "cancelled")
		_, err := uc.Execute(context.Background(), ap.ID)
		requireBusiness(t, err, httperr.KindConflict, "slot_full")
	})

	t.Run("in the past", func(t *testing.T) {
		past := testsupport.SeedAppointment(t, f.db, models.Appointment{
			AppointmentDate: "2025-05-29",
			AppointmentTime: "09:00:00",
			Status:          "cancelled",
		})
		_, err := uc.Execute(context.Background(), past.ID)
		requireBusiness(t, err, httperr.KindConflict, "appointment_in_past")
	})

	t.Run("not cancelled", func(t *testing.T) {
		ap := f.seedBooked(t, "09:00:00", "confirmed")
		_, err := uc.Execute(context.Background(), ap.ID)
		requireBusiness(t, err, httperr.KindConflict, "not_cancelled")
	})
}

func TestReschedule(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 1)
	testsupport.SeedSlot(t, f.db, "14:00:00", 1)
	uc := NewReschedule(f.deps)

	mine := f.seedBooked(t, "09:00:00", "pending")

	t.Run("same slot does not count against itself", func(t *testing.T) {
		ap, err := uc.Execute(context.Background(), mine.ID, bookingDate, "09:00")
		require.NoError(t, err)
		assert.Equal(t, "confirmed", ap.Status)
		assert.Equal(t, "09:00:00", ap.AppointmentTime)
	})

	t.Run("full target slot", func(t *testing.T) {
		f.seedBooked(t, "14:00:00", "pending")
		_, err := uc.Execute(context.Background(), mine.ID, bookingDate, "14:00")
		requireBusiness(t, err, httperr.KindConflict, "slot_full")
	})

	t.Run("free target slot", func(t *testing.T) {
		ap, err := uc.Execute(context.Background(), mine.ID, "2025-06-02", "14:00:00")
		require.NoError(t, err)
		assert.Equal(t, "2025-06-02", ap.AppointmentDate)
		assert.Equal(t, "14:00:00", ap.AppointmentTime)
		assert.Equal(t, "confirmed", ap.Status)
	})

	t.Run("bad formats", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), mine.ID, "2025/06/02", "14:00")
		requireBusiness(t, err, httperr.KindValidation, "invalid_date")

		_, err = uc.Execute(context.Background(), mine.ID, "2025-06-02", "9")
		requireBusiness(t, err, httperr.KindValidation, "invalid_time")
	})

	t.Run("past", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), mine.ID, "2025-05-01", "09:00")
		requireBusiness(t, err, httperr.KindValidation, "appointment_in_past")
	})
}

// ======================================================
// Payment status
// ======================================================

func TestMarkPaidCompletesLedger(t *testing.T) {
	f := newFixture(t)
	ap := f.seedBooked(t, "09:00:00", "confirmed")
	require.NoError(t, f.db.Create(&models.Payment{
		AppointmentID: ap.ID,
		Amount:        500000,
		PaymentMethod: "cash",
		Status:        "pending",
		PaymentDate:   time.Now(),
	}).Error)

	got, err := NewUpdatePaymentStatus(f.deps).Execute(context.Background(), ap.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, "paid", got.PaymentStatus)

	var payments []models.Payment
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, "completed", payments[0].Status)

	_, err = NewUpdatePaymentStatus(f.deps).Execute(context.Background(), ap.ID, "refunded")
	requireBusiness(t, err, httperr.KindValidation, "invalid_payment_status")
}

func TestMarkPaidWithoutLedgerRowsAddsOne(t *testing.T) {
	f := newFixture(t)
	ap := f.seedBooked(t, "09:00:00", "confirmed")

	_, err := NewUpdatePaymentStatus(f.deps).Execute(context.Background(), ap.ID, "paid")
	require.NoError(t, err)

	var p models.Payment
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).First(&p).Error)
	assert.Equal(t, int64(500000), p.Amount)
	assert.Equal(t, "completed", p.Status)
}

// ======================================================
// Read, update, delete
// ======================================================

func TestSearchAndGet(t *testing.T) {
	f := newFixture(t)
	ap := f.seedBooked(t, "09:00:00", "pending")
	require.NoError(t, f.db.Model(&ap).Update("email", "Owner@Example.com").Error)

	search := NewSearchAppointments(f.deps.Repo)

	byPhone, err := search.Execute(context.Background(), SearchInput{Phone: "0901234567"})
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	byEmail, err := search.Execute(context.Background(), SearchInput{Email: "owner@example.com"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	byCode, err := search.Execute(context.Background(), SearchInput{BookingID: ap.Code()})
	require.NoError(t, err)
	require.Len(t, byCode, 1)
	assert.Equal(t, ap.ID, byCode[0].ID)

	_, err = search.Execute(context.Background(), SearchInput{})
	requireBusiness(t, err, httperr.KindValidation, "missing_search_criteria")

	got, payments, err := NewGetAppointment(f.deps.Repo).Execute(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)
	assert.Empty(t, payments)
}

func TestListAppointments(t *testing.T) {
	f := newFixture(t)
	f.seedBooked(t, "14:00:00", "pending")
	f.seedBooked(t, "09:00:00", "cancelled")
	f.seedBooked(t, "09:00:00", "pending")

	apps, total, used, err := NewListAppointments(f.deps.Repo).Execute(context.Background(), domain.ListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, used.Page)
	assert.Equal(t, DefaultPageSize, used.Limit)
	require.Len(t, apps, 2)
	assert.Equal(t, "09:00:00", apps[0].AppointmentTime)

	_, _, _, err = NewListAppointments(f.deps.Repo).Execute(context.Background(), domain.ListFilter{FromDate: "June"})
	requireBusiness(t, err, httperr.KindValidation, "invalid_date")
}

func TestUpdateDetails(t *testing.T) {
	f := newFixture(t)
	ap := f.seedBooked(t, "09:00:00", "pending")
	uc := NewUpdateDetails(f.deps)

	name, breed := "Luna", "Poodle"
	got, err := uc.Execute(context.Background(), ap.ID, DetailsInput{PetName: &name, PetBreed: &breed})
	require.NoError(t, err)
	assert.Equal(t, "Luna", got.PetName)
	assert.Equal(t, "Poodle", got.PetBreed)
	assert.Equal(t, "09:00:00", got.AppointmentTime)

	empty := " "
	_, err = uc.Execute(context.Background(), ap.ID, DetailsInput{FullName: &empty})
	requireBusiness(t, err, httperr.KindValidation, "missing_required_fields")
}

func TestDeleteAppointment(t *testing.T) {
	f := newFixture(t)
	testsupport.SeedSlot(t, f.db, "09:00:00", 2)
	created, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.input("09:00"))
	require.NoError(t, err)

	deleted, err := NewDeleteAppointment(f.deps).Execute(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Len(t, deleted.Services, 2)

	var lines int64
	require.NoError(t, f.db.Model(&models.AppointmentService{}).Where("appointment_id = ?", created.ID).Count(&lines).Error)
	assert.Zero(t, lines)

	_, err = NewDeleteAppointment(f.deps).Execute(context.Background(), created.ID)
	requireBusiness(t, err, httperr.KindNotFound, "appointment_not_found")
}
