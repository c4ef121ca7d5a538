package flash

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Notice keys.
const (
	KeyRegistered         = "notice.registration.created"
	KeyAlreadyRegistered  = "notice.registration.duplicate"
	KeyTicketPurchased    = "notice.ticket.purchased"
	KeyDonationThanks     = "notice.donation.thanks"
	KeyCheckedIn          = "notice.checkin.ok"
	KeyAlreadyCheckedIn   = "notice.checkin.duplicate"
	KeyTicketNotFound     = "notice.checkin.not_found"
	KeySignedOut          = "notice.admin.signed_out"
	KeyInvalidCredentials = "notice.admin.invalid_credentials"
	KeyInvalidForm        = "notice.form.invalid"
)

var messages = func() catalog.Catalog {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range map[string]string{
		KeyRegistered:         "Thanks for registering! We sent the details to your inbox.",
		KeyAlreadyRegistered:  "That email is already registered.",
		KeyTicketPurchased:    "Your ticket is booked. Bring the code to the gate.",
		KeyDonationThanks:     "Thank you for supporting the festival.",
		KeyCheckedIn:          "Ticket checked in.",
		KeyAlreadyCheckedIn:   "That ticket was already checked in.",
		KeyTicketNotFound:     "No ticket matches that code.",
		KeySignedOut:          "You have been signed out.",
		KeyInvalidCredentials: "Invalid username or password.",
		KeyInvalidForm:        "Please check the form and try again.",
	} {
		_ = builder.SetString(language.English, key, text)
	}
	return builder
}()

// Message resolves notice text. Unknown keys render as the key itself.
func Message(notice Notice) string {
	printer := message.NewPrinter(language.English, message.Catalog(messages))
	return printer.Sprintf(notice.Key)
}
