package alertas

// EmailSender puerto de envío de correos. La implementación (SMTP) vive en
// infraestructura; nil deshabilita el canal de correo.
type EmailSender interface {
	Send(to []string, asunto, html string) error
}

// Difusor puerto de difusión en tiempo real hacia todos los clientes conectados.
type Difusor interface {
	Broadcast(evento string, payload any)
}
