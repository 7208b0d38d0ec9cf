package service

import (
	"bytes"
	"fmt"
	"html/template"

	"afristay/internal/domains/notification/model"
)

type mailTemplate struct {
	subject func(message model.Message) string
	body    *template.Template
}

var funcs = template.FuncMap{
	"money": func(amount float64, currency string) string {
		return fmt.Sprintf("%.0f %s", amount, currency)
	},
}

const bookingApprovedBody = `<h2>Your booking is confirmed</h2>
<p>Hello {{.GuestName}},</p>
<p>Your stay at <strong>{{.ListingTitle}}</strong>{{if .Location}} in {{.Location}}{{end}} has been approved.</p>
<table>
<tr><td>Receipt</td><td>{{.ReceiptNumber}}</td></tr>
<tr><td>Dates</td><td>{{.StartDate}} to {{.EndDate}} ({{.Nights}} nights)</td></tr>
<tr><td>Nightly price</td><td>{{money .NightlyPrice .Currency}}</td></tr>
<tr><td>Total</td><td>{{money .TotalAmount .Currency}}</td></tr>
<tr><td>Payment</td><td>{{.PaymentMethod}}</td></tr>
{{if .HostName}}<tr><td>Host</td><td>{{.HostName}}{{if .HostPhone}}, {{.HostPhone}}{{end}}</td></tr>{{end}}
</table>
<p>Issued {{.IssuedAt}}</p>`

const bookingRejectedBody = `<h2>Booking request declined</h2>
<p>Hello {{.GuestName}},</p>
<p>Unfortunately your request for <strong>{{.ListingTitle}}</strong> from {{.StartDate}} to {{.EndDate}} was not approved.
Other stays are waiting for you on AfriStay.</p>`

const bookingCompletedBody = `<h2>Thanks for staying with us</h2>
<p>Hello {{.GuestName}},</p>
<p>Your stay at <strong>{{.ListingTitle}}</strong> is complete. Total paid: {{money .TotalAmount .Currency}}.</p>`

const contactReceivedBody = `<h2>New contact message</h2>
<p><strong>{{.Name}}</strong> &lt;{{.Email}}&gt; wrote:</p>
<blockquote>{{.Message}}</blockquote>`

var templates = map[model.Kind]mailTemplate{
	model.KindBookingApproved: {
		subject: func(m model.Message) string {
			return "Booking confirmed - " + m.Booking.ReceiptNumber
		},
		body: template.Must(template.New(string(model.KindBookingApproved)).Funcs(funcs).Parse(bookingApprovedBody)),
	},
	model.KindBookingRejected: {
		subject: func(m model.Message) string {
			return "Booking request declined - " + m.Booking.ListingTitle
		},
		body: template.Must(template.New(string(model.KindBookingRejected)).Funcs(funcs).Parse(bookingRejectedBody)),
	},
	model.KindBookingCompleted: {
		subject: func(m model.Message) string {
			return "Stay completed - " + m.Booking.ListingTitle
		},
		body: template.Must(template.New(string(model.KindBookingCompleted)).Funcs(funcs).Parse(bookingCompletedBody)),
	},
	model.KindContactReceived: {
		subject: func(m model.Message) string {
			return "Contact message from " + m.Contact.Name
		},
		body: template.Must(template.New(string(model.KindContactReceived)).Funcs(funcs).Parse(contactReceivedBody)),
	},
}

// render returns the subject and html body for message.
func render(message model.Message) (string, string, error) {
	tmpl, ok := templates[message.Kind]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownKind, message.Kind)
	}

	var data any = message.Booking
	if message.Kind == model.KindContactReceived {
		data = message.Contact
	}

	if (message.Kind == model.KindContactReceived && message.Contact == nil) ||
		(message.Kind != model.KindContactReceived && message.Booking == nil) {
		return "", "", fmt.Errorf("%w: %s", ErrEmptyPayload, message.Kind)
	}

	buf := bytes.Buffer{}
	if err := tmpl.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s: %w", message.Kind, err)
	}

	return tmpl.subject(message), buf.String(), nil
}
