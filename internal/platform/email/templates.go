package email

import (
	"fmt"

	"github.com/matcornic/hermes/v2"
)

// Message is a fully rendered notification ready for dispatch.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

var product = hermes.Hermes{
	Product: hermes.Product{
		Name:      "UAJK Neelum Campus Library",
		Link:      "https://library.uajk-neelum.edu.pk/",
		Copyright: "University Of Azad Jammu & Kashmir Neelum Campus",
	},
}

func render(subject string, body hermes.Body) (Message, error) {
	mail := hermes.Email{Body: body}
	html, err := product.GenerateHTML(mail)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render HTML email body: %w", err)
	}
	text, err := product.GeneratePlainText(mail)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render plain text email body: %w", err)
	}
	return Message{Subject: subject, TextBody: text, HTMLBody: html}, nil
}

// BuildWelcomeEmail renders the account-created notification carrying the
// student's generated credentials.
func BuildWelcomeEmail(studentName, email, tempPassword string) (Message, error) {
	return render("Your library account is ready", hermes.Body{
		Name: studentName,
		Intros: []string{
			"A library account has been created for you at the campus library.",
			"Use the credentials below to sign in, then change your password.",
		},
		Dictionary: []hermes.Entry{
			{Key: "Email", Value: email},
			{Key: "Password", Value: tempPassword},
		},
		Outros: []string{
			"If you did not expect this account, contact the library office.",
		},
	})
}

// BuildClearanceApprovedEmail renders the final approval notification.
func BuildClearanceApprovedEmail(studentName, requestID string) (Message, error) {
	return render("Your clearance request has been approved", hermes.Body{
		Name: studentName,
		Intros: []string{
			"Your library clearance request has been approved by both the library administration and your head of department.",
			"Your clearance certificate is now available from the library portal.",
		},
		Dictionary: []hermes.Entry{
			{Key: "Request ID", Value: requestID},
		},
		Outros: []string{
			"Your library account has been closed as part of the clearance.",
		},
	})
}

// BuildClearanceRejectedEmail renders the rejection notification, always
// carrying the reviewer's reason.
func BuildClearanceRejectedEmail(studentName, requestID, reason string) (Message, error) {
	return render("Your clearance request has been rejected", hermes.Body{
		Name: studentName,
		Intros: []string{
			"Your library clearance request has been rejected.",
		},
		Dictionary: []hermes.Entry{
			{Key: "Request ID", Value: requestID},
			{Key: "Reason", Value: reason},
		},
		Outros: []string{
			"Resolve the issue above with the library office and submit a new request.",
		},
	})
}
