package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

var subjects = map[Kind]string{
	KindBookingConfirmation: "Your pet spa appointment %s is booked",
	KindPaymentReceived:     "Payment received for appointment %s",
	KindMethodChanged:       "Payment method updated for appointment %s",
	KindRescheduled:         "Appointment %s has been rescheduled",
}

var bodyTemplate = template.Must(template.New("appointment").Funcs(template.FuncMap{
	"vnd": formatVND,
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Heading}}</h2>
  <p>Hello {{.A.FullName}},</p>
  <p>{{.Lead}}</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><b>Booking code</b></td><td>{{.A.Code}}</td></tr>
    <tr><td><b>Pet</b></td><td>{{.A.PetName}} ({{.A.PetType}})</td></tr>
    <tr><td><b>Date</b></td><td>{{.A.Date}}</td></tr>
    <tr><td><b>Time</b></td><td>{{.A.Time}}</td></tr>
    <tr><td><b>Payment method</b></td><td>{{.A.PaymentMethod}}</td></tr>
    <tr><td><b>Payment status</b></td><td>{{.A.PaymentStatus}}</td></tr>
    <tr><td><b>Status</b></td><td>{{.A.Status}}</td></tr>
  </table>
  <h3>Services</h3>
  <ul>
  {{- range .A.Services}}
    <li>{{.Name}}: {{vnd .Price}}</li>
  {{- end}}
  </ul>
  <p><b>Total: {{vnd .A.TotalAmount}}</b></p>
</body>
</html>
`))

type bodyData struct {
	Heading string
	Lead    string
	A       AppointmentView
}

// Render returns the subject and HTML body for n.
func Render(n Notice) (string, string, error) {
	format, ok := subjects[n.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notice kind %q", n.Kind)
	}

	data := bodyData{A: n.Appointment}
	switch n.Kind {
	case KindBookingConfirmation:
		data.Heading = "Appointment booked"
		data.Lead = "Thank you for booking with our pet spa. Here are the details of your appointment."
	case KindPaymentReceived:
		data.Heading = "Payment received"
		data.Lead = "We have received your payment. Your appointment is confirmed."
	case KindMethodChanged:
		data.Heading = "Payment method updated"
		data.Lead = "The payment method of your appointment has changed. Updated details below."
	case KindRescheduled:
		data.Heading = "Appointment rescheduled"
		data.Lead = "Your appointment has moved to a new time and is confirmed."
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", n.Kind, err)
	}
	return fmt.Sprintf(format, n.Appointment.Code), buf.String(), nil
}

// formatVND renders 500000 as "500.000 VND".
func formatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out) + " VND"
	}
	return string(out) + " VND"
}
