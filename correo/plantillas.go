package correo

import "html/template"

var plantillaPaciente = template.Must(template.New("paciente").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Confirmación de Agendamiento</title></head>
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; background-color: #f5f5f5; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background: white; border-radius: 12px; overflow: hidden;">
    <div style="background: #2e7d32; color: white; padding: 30px; text-align: center;">
      <h1 style="margin: 0;">Aspect Hospital</h1>
      <p style="margin: 10px 0 0 0;">Confirmación de Agendamiento</p>
    </div>
    <div style="padding: 30px;">
      <p style="font-size: 18px; color: #1b5e20;">Hola, <strong>{{.NombrePaciente}}</strong></p>
      <p>Tu cita quedó confirmada. Estos son los detalles:</p>
      <div style="background: #e8f5e9; border-left: 4px solid #4caf50; padding: 20px; margin: 20px 0; border-radius: 8px;">
        <p style="margin: 8px 0;"><strong>Examen:</strong> {{.NombreExamen}}</p>
        <p style="margin: 8px 0;"><strong>Especialidad:</strong> {{.Especialidad}}</p>
        <p style="margin: 8px 0;"><strong>Fecha y hora:</strong> {{.FechaFormateada}}</p>
      </div>
      {{if .Notas}}
      <div style="background: #fff3e0; border-left: 4px solid #ff9800; padding: 15px; margin: 20px 0; border-radius: 8px;">
        <strong>Observaciones:</strong><br>{{.Notas}}
      </div>
      {{end}}
      <p style="font-size: 14px; color: #666;">
        <strong>Importante:</strong> llega con 15 minutos de anticipación. Para cancelar
        o reprogramar, contáctanos con al menos 24 horas de anticipación.
      </p>
    </div>
    <div style="background: #f5f5f5; padding: 20px; text-align: center; font-size: 14px; color: #666;">
      <p><strong>Aspect Hospital</strong> · contacto@aspect.com</p>
    </div>
  </div>
</body>
</html>`))

var plantillaAdmin = template.Must(template.New("admin").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Nuevo Agendamiento</title></head>
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; background-color: #f5f5f5; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background: white; border-radius: 12px; overflow: hidden;">
    <div style="background: #1976d2; color: white; padding: 30px; text-align: center;">
      <h1 style="margin: 0;">Nuevo Agendamiento</h1>
      <p style="margin: 10px 0 0 0;">Notificación Administrativa</p>
    </div>
    <div style="padding: 30px;">
      <div style="background: #e3f2fd; border-left: 4px solid #2196f3; padding: 20px; margin: 20px 0; border-radius: 8px;">
        <p style="margin: 8px 0;"><strong>Paciente:</strong> {{.NombrePaciente}}</p>
        <p style="margin: 8px 0;"><strong>Email:</strong> {{.EmailPaciente}}</p>
        <p style="margin: 8px 0;"><strong>Examen:</strong> {{.NombreExamen}}</p>
        <p style="margin: 8px 0;"><strong>Especialidad:</strong> {{.Especialidad}}</p>
        <p style="margin: 8px 0;"><strong>Fecha y hora:</strong> {{.FechaFormateada}}</p>
        {{if .Notas}}<p style="margin: 8px 0;"><strong>Observaciones:</strong> {{.Notas}}</p>{{end}}
      </div>
      <p style="font-size: 14px; color: #666;">El paciente ya recibió su correo de confirmación.</p>
    </div>
  </div>
</body>
</html>`))
