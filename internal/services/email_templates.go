package services

import (
	"bytes"
	"html/template"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "layout_start"}}<!doctype html><html><body style="font-family:Arial,sans-serif;color:#1f2937;max-width:600px;margin:0 auto">
<h2 style="color:#0f766e">Quarhire</h2>{{end}}
{{define "layout_end"}}<p style="font-size:12px;color:#6b7280">Need help? Call {{.SupportPhone}} or WhatsApp {{.SupportWhatsApp}}.</p></body></html>{{end}}

{{define "trip"}}<table cellpadding="4">
<tr><td><b>Reference</b></td><td>{{.ClientReference}}</td></tr>
<tr><td><b>Name</b></td><td>{{.FullName}}</td></tr>
<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
<tr><td><b>Pickup</b></td><td>{{.PickupLocation}}</td></tr>
<tr><td><b>Destination</b></td><td>{{.Destination}}</td></tr>
<tr><td><b>Date / time</b></td><td>{{.PickupDate}} {{.PickupTime}}</td></tr>
{{if .FlightNumber}}<tr><td><b>Flight</b></td><td>{{.FlightNumber}}</td></tr>{{end}}
<tr><td><b>Vehicle</b></td><td>{{.VehicleType}}</td></tr>
{{if .Passengers}}<tr><td><b>Passengers</b></td><td>{{.Passengers}}</td></tr>{{end}}
{{if .Amount}}<tr><td><b>Amount</b></td><td>{{.Amount}}</td></tr>{{end}}
</table>{{end}}

{{define "booking_customer"}}{{template "layout_start" .}}
<p>Hi {{.FullName}},</p>
<p>Thank you for booking with Quarhire. We have received your request and will be in touch shortly.</p>
{{template "trip" .}}
<p>Free cancellation up to 2 hours before pickup.</p>
{{template "layout_end" .}}{{end}}

{{define "booking_admin"}}{{template "layout_start" .}}
<p>New booking request received.</p>
{{template "trip" .}}
{{if .Notes}}<p><b>Notes:</b> {{.Notes}}</p>{{end}}
{{template "layout_end" .}}{{end}}

{{define "payment_customer"}}{{template "layout_start" .}}
<p>Hi {{.FullName}},</p>
<p>Your payment has been received and your booking is confirmed as paid.</p>
{{template "trip" .}}
{{if .TransactionID}}<p>Transaction: {{.TransactionID}}</p>{{end}}
{{template "layout_end" .}}{{end}}

{{define "payment_admin"}}{{template "layout_start" .}}
<p>Payment received for booking {{.ClientReference}}.</p>
{{template "trip" .}}
{{if .TransactionID}}<p>Transaction: {{.TransactionID}}</p>{{end}}
{{template "layout_end" .}}{{end}}

{{define "invoice"}}{{template "layout_start" .}}
<p>Hi {{.FullName}},</p>
<p>Please find attached invoice {{.InvoiceNumber}} for your booking {{.ClientReference}}.</p>
{{template "layout_end" .}}{{end}}

{{define "contact"}}{{template "layout_start" .}}
<p>New message from the website contact form.</p>
<table cellpadding="4">
<tr><td><b>Name</b></td><td>{{.FullName}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
{{if .Phone}}<tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>{{end}}
{{if .Subject}}<tr><td><b>Subject</b></td><td>{{.Subject}}</td></tr>{{end}}
</table>
<p style="white-space:pre-wrap">{{.Message}}</p>
{{template "layout_end" .}}{{end}}
`))

// emailData is the single view model shared by every template.
type emailData struct {
	ClientReference string
	FullName        string
	Email           string
	Phone           string
	PickupLocation  string
	Destination     string
	PickupDate      string
	PickupTime      string
	FlightNumber    string
	VehicleType     string
	Passengers      int
	Amount          string
	Notes           string
	TransactionID   string
	InvoiceNumber   string
	Subject         string
	Message         string
	SupportPhone    string
	SupportWhatsApp string
}

func renderEmail(name string, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
