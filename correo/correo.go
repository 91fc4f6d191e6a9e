// Package correo envía las notificaciones de agendamiento por SMTP. El
// envío es un efecto secundario de mejor esfuerzo: su falla se registra y
// nunca afecta la cita ya confirmada.
package correo

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// DatosCita es la información que viaja en los correos de confirmación
type DatosCita struct {
	NombrePaciente string
	EmailPaciente  string
	NombreExamen   string
	Especialidad   string
	Fecha          time.Time
	Notas          string
}

// Notificador es lo que los handlers conocen del servicio de correo
type Notificador interface {
	EnviarConfirmacionCita(datos DatosCita) error
}

// Mailer implementa Notificador sobre SMTP
type Mailer struct {
	dialer     *gomail.Dialer
	deNombre   string
	deEmail    string
	emailAdmin string
	habilitado bool
}

// NewDesdeEnv arma el mailer con la configuración SMTP del entorno. Sin
// SMTP_HOST el mailer queda deshabilitado y sólo registra los envíos.
func NewDesdeEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	puerto, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		puerto = 587
	}
	usuario := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")

	deNombre := os.Getenv("SMTP_FROM_NAME")
	if deNombre == "" {
		deNombre = "Aspect Hospital"
	}
	deEmail := os.Getenv("SMTP_FROM_EMAIL")
	if deEmail == "" {
		deEmail = "noreply@aspect.com"
	}

	m := &Mailer{
		deNombre:   deNombre,
		deEmail:    deEmail,
		emailAdmin: usuario,
		habilitado: host != "",
	}
	if m.habilitado {
		m.dialer = gomail.NewDialer(host, puerto, usuario, pass)
	}
	return m
}

// EnviarConfirmacionCita manda la confirmación al paciente y la
// notificación al personal de la clínica
func (m *Mailer) EnviarConfirmacionCita(datos DatosCita) error {
	if !m.habilitado {
		log.Printf("[Correo] SMTP deshabilitado, se omite confirmación para %s", datos.EmailPaciente)
		return nil
	}

	cuerpoPaciente, err := renderizar(plantillaPaciente, datos)
	if err != nil {
		return fmt.Errorf("plantilla paciente: %w", err)
	}
	cuerpoAdmin, err := renderizar(plantillaAdmin, datos)
	if err != nil {
		return fmt.Errorf("plantilla admin: %w", err)
	}

	paciente := gomail.NewMessage()
	paciente.SetHeader("From", paciente.FormatAddress(m.deEmail, m.deNombre))
	paciente.SetHeader("To", datos.EmailPaciente)
	paciente.SetHeader("Subject", "Confirmación de Agendamiento - "+datos.NombreExamen)
	paciente.SetBody("text/html", cuerpoPaciente)

	admin := gomail.NewMessage()
	admin.SetHeader("From", admin.FormatAddress(m.deEmail, m.deNombre))
	admin.SetHeader("To", m.emailAdmin)
	admin.SetHeader("Subject", "Nuevo Agendamiento - "+datos.NombrePaciente+" - "+datos.NombreExamen)
	admin.SetBody("text/html", cuerpoAdmin)

	return m.dialer.DialAndSend(paciente, admin)
}

func renderizar(t *template.Template, datos DatosCita) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, struct {
		DatosCita
		FechaFormateada string
	}{datos, datos.Fecha.Format("02/01/2006 15:04")}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
