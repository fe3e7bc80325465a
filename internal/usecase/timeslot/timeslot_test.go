package timeslot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/timeslot"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/repository"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/testsupport"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

func newRegistry(t *testing.T) (*Registry, *gorm.DB) {
	t.Helper()
	gdb := testsupport.NewDB(t)
	now := time.Date(2025, 5, 30, 10, 0, 0, 0, timezone.Location(timezone.DefaultTimezone))
	return NewRegistry(
		repository.NewTimeSlotGormRepository(gdb),
		&testsupport.Auditor{},
		timezone.Fixed(now, timezone.DefaultTimezone),
	), gdb
}

func requireBusiness(t *testing.T, err error, kind httperr.Kind, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, httperr.KindOf(err), err.Error())
	assert.True(t, httperr.IsBusiness(err, code), err.Error())
}

func TestCreateNormalizesTime(t *testing.T) {
	r, _ := newRegistry(t)

	for in, want := range map[string]string{"9": "09:00:00", "10:30": "10:30:00", "14:15:00": "14:15:00"} {
		slot, err := r.Create(context.Background(), CreateInput{Time: in, MaxCapacity: 2})
		require.NoError(t, err, in)
		assert.Equal(t, want, slot.SlotTime)
		assert.True(t, slot.IsActive)
	}
}

func TestCreateValidation(t *testing.T) {
	r, _ := newRegistry(t)

	_, err := r.Create(context.Background(), CreateInput{Time: "25:00", MaxCapacity: 2})
	requireBusiness(t, err, httperr.KindValidation, "invalid_time")

	_, err = r.Create(context.Background(), CreateInput{Time: "09:00", MaxCapacity: 0})
	requireBusiness(t, err, httperr.KindValidation, "invalid_capacity")

	_, err = r.Create(context.Background(), CreateInput{})
	requireBusiness(t, err, httperr.KindValidation, "missing_required_fields")
}

func TestOneActiveSlotPerTime(t *testing.T) {
	r, _ := newRegistry(t)

	first, err := r.Create(context.Background(), CreateInput{Time: "09:00", MaxCapacity: 2})
	require.NoError(t, err)

	_, err = r.Create(context.Background(), CreateInput{Time: "09", MaxCapacity: 3})
	requireBusiness(t, err, httperr.KindConflict, "duplicate_slot_time")

	inactive := false
	second, err := r.Create(context.Background(), CreateInput{Time: "09:00", MaxCapacity: 3, IsActive: &inactive})
	require.NoError(t, err)

	active := true
	_, err = r.Update(context.Background(), second.ID, UpdateInput{IsActive: &active})
	requireBusiness(t, err, httperr.KindConflict, "duplicate_slot_time")

	// the slot itself is not a duplicate of itself
	capacity := 4
	updated, err := r.Update(context.Background(), first.ID, UpdateInput{MaxCapacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MaxCapacity)
}

func TestListFiltersAndPaging(t *testing.T) {
	r, _ := newRegistry(t)
	for _, tm := range []string{"08:00", "09:00", "10:00", "14:00"} {
		_, err := r.Create(context.Background(), CreateInput{Time: tm, MaxCapacity: 2})
		require.NoError(t, err)
	}

	slots, total, used, err := r.List(context.Background(), domain.ListFilter{FromTime: "9", ToTime: "12:00", Limit: 1, Sort: "time_desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, used.Page)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00:00", slots[0].SlotTime)

	inactive := false
	slots, total, _, err = r.List(context.Background(), domain.ListFilter{Active: &inactive})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, slots)

	slots, _, _, err = r.List(context.Background(), domain.ListFilter{Search: "14"})
	require.NoError(t, err)
	require.Len(t, slots, 1)

	_, _, _, err = r.List(context.Background(), domain.ListFilter{Sort: "random"})
	requireBusiness(t, err, httperr.KindValidation, "invalid_sort")
}

func TestDeleteGuardsUpcomingAppointments(t *testing.T) {
	r, gdb := newRegistry(t)
	slot, err := r.Create(context.Background(), CreateInput{Time: "09:00", MaxCapacity: 2})
	require.NoError(t, err)

	upcoming := testsupport.SeedAppointment(t, gdb, models.Appointment{AppointmentDate: "2025-06-01", AppointmentTime: "09:00:00"})
	testsupport.SeedAppointment(t, gdb, models.Appointment{AppointmentDate: "2025-05-01", AppointmentTime: "09:00:00"})

	err = r.Delete(context.Background(), slot.ID)
	requireBusiness(t, err, httperr.KindConflict, "slot_has_future_appointments")

	require.NoError(t, gdb.Model(&upcoming).Update("status", "cancelled").Error)
	require.NoError(t, r.Delete(context.Background(), slot.ID))

	_, err = r.Get(context.Background(), slot.ID)
	requireBusiness(t, err, httperr.KindNotFound, "time_slot_not_found")

	err = r.Delete(context.Background(), slot.ID)
	requireBusiness(t, err, httperr.KindNotFound, "time_slot_not_found")
}
