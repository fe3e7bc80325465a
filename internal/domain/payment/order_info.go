package payment

import (
	"regexp"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

var (
	orderInfoAppointment = regexp.MustCompile(`(?i)\bAPT-(\d+)\b`)
	orderInfoUnsafe      = regexp.MustCompile(`[^A-Za-z0-9 \-]+`)
)

// OrderInfo builds the gateway order description. The gateway rejects
// accents and most punctuation, so everything else is stripped.
func OrderInfo(ap *models.Appointment) string {
	info := "Thanh toan lich hen spa " + ap.Code() + " " + ap.PetName
	info = orderInfoUnsafe.ReplaceAllString(info, "")
	return strings.Join(strings.Fields(info), " ")
}

// AppointmentIDFromOrderInfo extracts the appointment id embedded by OrderInfo.
func AppointmentIDFromOrderInfo(info string) (uint, bool) {
	m := orderInfoAppointment.FindStringSubmatch(info)
	if m == nil {
		return 0, false
	}
	return models.ParseCode(models.PrefixAppointment, m[1])
}
