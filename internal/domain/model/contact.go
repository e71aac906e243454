package model

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Message is an outgoing HTML e-mail.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}
