package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// Notification copy is Portuguese: the studio's clients book in pt-BR.

var weekdaysPT = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

var monthsPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// formatDateLongPT renders "segunda-feira, 13 de outubro de 2025"
func formatDateLongPT(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysPT[int(t.Weekday())], t.Day(), monthsPT[int(t.Month())-1], t.Year())
}

// formatDateShortPT renders "13/10/2025"
func formatDateShortPT(t time.Time) string {
	return t.Format("02/01/2006")
}

// notifyConfirmation sends the confirmation email and WhatsApp message.
// Best-effort: failures are logged and swallowed so a broken provider
// never blocks the booking flow.
func (s *Service) notifyConfirmation(ctx context.Context, a *domain.Appointment) {
	subject := fmt.Sprintf("✨ Consulta Confirmada - %s - %s",
		a.ServiceName, formatDateShortPT(a.AppointmentDate))

	if s.emailClient.Enabled() {
		if _, err := s.emailClient.SendEmail(ctx, a.ClientEmail, subject, s.confirmationEmailHTML(a)); err != nil {
			s.logger.Error("notifyConfirmation: email failed for appointment id=%s: %v", a.ID, err)
		}
	}

	if s.whatsappClient.Enabled() && a.ClientPhone != nil {
		if _, err := s.whatsappClient.SendText(ctx, *a.ClientPhone, s.confirmationWhatsAppText(a)); err != nil {
			s.logger.Error("notifyConfirmation: whatsapp failed for appointment id=%s: %v", a.ID, err)
		}
	}
}

// notifyCancellation sends the cancellation email and WhatsApp message.
// Best-effort, same as notifyConfirmation.
func (s *Service) notifyCancellation(ctx context.Context, a *domain.Appointment) {
	subject := fmt.Sprintf("😔 Consulta Cancelada - %s - %s",
		a.ServiceName, formatDateShortPT(a.AppointmentDate))

	if s.emailClient.Enabled() {
		if _, err := s.emailClient.SendEmail(ctx, a.ClientEmail, subject, s.cancellationEmailHTML(a)); err != nil {
			s.logger.Error("notifyCancellation: email failed for appointment id=%s: %v", a.ID, err)
		}
	}

	if s.whatsappClient.Enabled() && a.ClientPhone != nil {
		if _, err := s.whatsappClient.SendText(ctx, *a.ClientPhone, s.cancellationWhatsAppText(a)); err != nil {
			s.logger.Error("notifyCancellation: whatsapp failed for appointment id=%s: %v", a.ID, err)
		}
	}
}

// notifyReminder sends the reminder email and WhatsApp message. This one
// is admin-triggered, so unlike the lifecycle notifications it reports
// failure: success on any channel counts, no channel at all is an error.
func (s *Service) notifyReminder(ctx context.Context, a *domain.Appointment) error {
	subject := fmt.Sprintf("🔔 Lembrete de Consulta - %s - %s",
		a.ServiceName, formatDateShortPT(a.AppointmentDate))

	delivered := false

	if s.emailClient.Enabled() {
		if _, err := s.emailClient.SendEmail(ctx, a.ClientEmail, subject, s.reminderEmailHTML(a)); err != nil {
			s.logger.Error("notifyReminder: email failed for appointment id=%s: %v", a.ID, err)
		} else {
			delivered = true
		}
	}

	if s.whatsappClient.Enabled() && a.ClientPhone != nil {
		if _, err := s.whatsappClient.SendText(ctx, *a.ClientPhone, s.reminderWhatsAppText(a)); err != nil {
			s.logger.Error("notifyReminder: whatsapp failed for appointment id=%s: %v", a.ID, err)
		} else {
			delivered = true
		}
	}

	if !delivered {
		return ErrNoChannel
	}
	return nil
}

func (s *Service) confirmationEmailHTML(a *domain.Appointment) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #9b87f5; text-align: center;">✨ Consulta Confirmada!</h1>
  <p>Olá <strong>%s</strong>,</p>
  <p>Sua consulta foi confirmada com sucesso! Estamos ansiosos para te receber.</p>
  <div style="background: #f5f7fa; padding: 25px; border-radius: 10px; border-left: 5px solid #9b87f5;">
    <h3 style="color: #9b87f5;">📋 Detalhes da Consulta</h3>
    <p><strong>🌿 Serviço:</strong> %s</p>
    <p><strong>📅 Data:</strong> %s</p>
    <p><strong>⏰ Horário:</strong> %s</p>
  </div>
  <div style="background: #e8f5e8; padding: 20px; border-radius: 8px; margin-top: 20px;">
    <h4 style="color: #2e7d32;">📍 Como chegar:</h4>
    <p>%s</p>
  </div>
  <div style="background: #fff3e0; padding: 20px; border-radius: 8px; margin-top: 20px;">
    <h4 style="color: #f57c00;">💬 Contato para dúvidas:</h4>
    <p>WhatsApp: %s</p>
    <p style="font-size: 14px;"><em>Caso precise cancelar ou reagendar, entre em contato com pelo menos 2 horas de antecedência.</em></p>
  </div>
  <p style="text-align: center; color: #666; font-size: 14px; margin-top: 30px;">
    Obrigado por confiar em nossos serviços.<br>
    <strong style="color: #9b87f5;">%s</strong>
  </p>
</div>`,
		a.ClientName,
		a.ServiceName,
		formatDateLongPT(a.AppointmentDate),
		a.StartTime.String(),
		s.studio.Address,
		s.studio.Phone,
		s.studio.Name,
	)
}

func (s *Service) cancellationEmailHTML(a *domain.Appointment) string {
	reasonBlock := ""
	if a.CancellationReason != nil && *a.CancellationReason != "" {
		reasonBlock = fmt.Sprintf(`
  <div style="background: #fff3cd; padding: 20px; border-radius: 8px; margin-top: 20px; border-left: 5px solid #ffc107;">
    <h4 style="color: #856404;">📝 Motivo do cancelamento:</h4>
    <p style="font-style: italic;">%s</p>
  </div>`, *a.CancellationReason)
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #e74c3c; text-align: center;">😔 Consulta Cancelada</h1>
  <p>Olá <strong>%s</strong>,</p>
  <p>Sua consulta agendada foi cancelada. Pedimos desculpas pelo inconveniente.</p>
  <div style="background: #fff5f5; padding: 25px; border-radius: 10px; border-left: 5px solid #e74c3c;">
    <h3 style="color: #e74c3c;">📋 Detalhes da Consulta Cancelada</h3>
    <p><strong>🌿 Serviço:</strong> %s</p>
    <p><strong>📅 Data:</strong> %s</p>
    <p><strong>⏰ Horário:</strong> %s</p>
  </div>%s
  <div style="background: #e3f2fd; padding: 20px; border-radius: 8px; margin-top: 20px;">
    <h4 style="color: #1976d2;">🔄 Reagendar Consulta</h4>
    <p>Para reagendar sua sessão, acesse nosso site e escolha um novo horário, ou entre em contato pelo WhatsApp: %s</p>
  </div>
  <p style="text-align: center; color: #666; font-size: 14px; margin-top: 30px;">
    Agradecemos sua compreensão.<br>
    <strong style="color: #9b87f5;">%s</strong>
  </p>
</div>`,
		a.ClientName,
		a.ServiceName,
		formatDateShortPT(a.AppointmentDate),
		a.StartTime.String(),
		reasonBlock,
		s.studio.Phone,
		s.studio.Name,
	)
}

func (s *Service) reminderEmailHTML(a *domain.Appointment) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #9b87f5; text-align: center;">🔔 Lembrete de Consulta</h1>
  <p>Olá <strong>%s</strong>,</p>
  <p>Passando para lembrar da sua consulta. Até breve!</p>
  <div style="background: #f5f7fa; padding: 25px; border-radius: 10px; border-left: 5px solid #9b87f5;">
    <h3 style="color: #9b87f5;">📋 Detalhes da Consulta</h3>
    <p><strong>🌿 Serviço:</strong> %s</p>
    <p><strong>📅 Data:</strong> %s</p>
    <p><strong>⏰ Horário:</strong> %s</p>
  </div>
  <div style="background: #e8f5e8; padding: 20px; border-radius: 8px; margin-top: 20px;">
    <h4 style="color: #2e7d32;">📍 Como chegar:</h4>
    <p>%s</p>
  </div>
  <p style="text-align: center; color: #666; font-size: 14px; margin-top: 30px;">
    Até logo!<br>
    <strong style="color: #9b87f5;">%s</strong>
  </p>
</div>`,
		a.ClientName,
		a.ServiceName,
		formatDateLongPT(a.AppointmentDate),
		a.StartTime.String(),
		s.studio.Address,
		s.studio.Name,
	)
}

func (s *Service) reminderWhatsAppText(a *domain.Appointment) string {
	return fmt.Sprintf(`🔔 *LEMBRETE DE CONSULTA*

Olá *%s*!

Passando para lembrar da sua consulta:

📋 *DETALHES DA CONSULTA*
🌿 *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

📍 *LOCALIZAÇÃO*
%s

Até breve! 🙏

*%s*`,
		a.ClientName,
		a.ServiceName,
		formatDateLongPT(a.AppointmentDate),
		a.StartTime.String(),
		s.studio.Address,
		s.studio.Name,
	)
}

func (s *Service) confirmationWhatsAppText(a *domain.Appointment) string {
	return fmt.Sprintf(`✨ *CONSULTA CONFIRMADA* ✨

Olá *%s*!

Sua consulta foi confirmada com sucesso! 🎉

📋 *DETALHES DA CONSULTA*
🌿 *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s

📍 *LOCALIZAÇÃO*
%s

🔄 *Precisa cancelar ou reagendar?*
Entre em contato com pelo menos 2h de antecedência.

Obrigado por confiar em nossos serviços! 🙏

*%s*`,
		a.ClientName,
		a.ServiceName,
		formatDateLongPT(a.AppointmentDate),
		a.StartTime.String(),
		s.studio.Address,
		s.studio.Name,
	)
}

func (s *Service) cancellationWhatsAppText(a *domain.Appointment) string {
	reasonLine := ""
	if a.CancellationReason != nil && *a.CancellationReason != "" {
		reasonLine = fmt.Sprintf("\n📝 *Motivo:* %s\n", *a.CancellationReason)
	}

	return fmt.Sprintf(`😔 *CONSULTA CANCELADA*

Olá *%s*,

Sua consulta foi cancelada:

📋 *DETALHES DA CONSULTA CANCELADA*
🌿 *Serviço:* %s
📅 *Data:* %s
⏰ *Horário:* %s
%s
🔄 *REAGENDAR SUA CONSULTA*
Para reagendar, acesse nosso site ou ligue: %s

Pedimos desculpas pelo inconveniente! 🙏

*%s*`,
		a.ClientName,
		a.ServiceName,
		formatDateShortPT(a.AppointmentDate),
		a.StartTime.String(),
		reasonLine,
		s.studio.Phone,
		s.studio.Name,
	)
}
