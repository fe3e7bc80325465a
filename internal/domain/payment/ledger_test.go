package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

func TestCoverTotalCompletesPendingRowsFirst(t *testing.T) {
	ap := &models.Appointment{ID: 1, TotalAmount: 500000, PaymentMethod: "cash"}
	payments := []models.Payment{
		{ID: 3, Amount: 300000, Status: "pending"},
		{ID: 2, Amount: 200000, Status: "completed"},
	}

	updated, extra := CoverTotal(ap, payments, time.Now(), "confirmed by staff")

	require.Len(t, updated, 1)
	assert.Equal(t, uint(3), updated[0].ID)
	assert.Equal(t, "completed", updated[0].Status)
	assert.Equal(t, "confirmed by staff", updated[0].Notes)
	assert.Nil(t, extra)
	// input rows are not touched
	assert.Equal(t, "pending", payments[0].Status)
}

func TestCoverTotalAddsRowForShortfall(t *testing.T) {
	ap := &models.Appointment{ID: 1, TotalAmount: 500000, PaymentMethod: "cash"}
	payments := []models.Payment{{ID: 2, Amount: 100000, Status: "completed"}}

	updated, extra := CoverTotal(ap, payments, time.Now(), "note")

	assert.Empty(t, updated)
	require.NotNil(t, extra)
	assert.Equal(t, int64(400000), extra.Amount)
	assert.Equal(t, "completed", extra.Status)
	assert.Equal(t, "cash", extra.PaymentMethod)
}

func TestCoverTotalNothingToDo(t *testing.T) {
	ap := &models.Appointment{ID: 1, TotalAmount: 500000}
	updated, extra := CoverTotal(ap, []models.Payment{{Amount: 500000, Status: "completed"}}, time.Now(), "note")
	assert.Empty(t, updated)
	assert.Nil(t, extra)
}

func TestAppendNote(t *testing.T) {
	assert.Equal(t, "a", AppendNote("", "a"))
	assert.Equal(t, "a\nb", AppendNote("a\n", "b"))
}
