package mail

type OutreachEmailData struct {
	Lines []string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	dialer   dialer
}
