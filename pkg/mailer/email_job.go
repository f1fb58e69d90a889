package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template selects a canned notification; Data feeds its placeholders.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome", "time_received"
	Data     map[string]any `json:"data,omitempty"`
}

// Render fills Subject and Text from the job template when one is set.
// Unknown templates leave the explicit Subject/Text untouched.
func (j *EmailJob) Render() {
	switch j.Template {
	case "welcome":
		j.Subject = "Bienvenido a Comparte tu Tiempo"
		j.Text = "Hola " + str(j.Data["Name"]) + ",\n\n" +
			"Tu cuenta ya está activa. Publica una oferta y empieza a intercambiar tiempo."
	case "time_received":
		j.Subject = "Has recibido tiempo"
		j.Text = "Hola " + str(j.Data["Name"]) + ",\n\n" +
			str(j.Data["Sender"]) + " te ha enviado " + str(j.Data["Duration"]) +
			" por \"" + str(j.Data["Title"]) + "\". Tu saldo actual es " + str(j.Data["Balance"]) + "."
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
