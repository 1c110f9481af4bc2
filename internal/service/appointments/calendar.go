package appointments

import (
	"context"
	"fmt"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/internal/integrations/googlecalendar"
)

// createCalendarEvent mirrors a confirmed appointment onto the studio
// calendar and stores the event ID. Best-effort: a disconnected or failing
// calendar never blocks confirmation.
func (s *Service) createCalendarEvent(ctx context.Context, a *domain.Appointment) {
	if !s.calendarClient.Connected(ctx) {
		return
	}
	if a.CalendarEventID != nil {
		s.logger.Warn("createCalendarEvent: appointment id=%s already has event %s", a.ID, *a.CalendarEventID)
		return
	}

	event, err := s.buildCalendarEvent(a)
	if err != nil {
		s.logger.Error("createCalendarEvent: failed to build event for appointment id=%s: %v", a.ID, err)
		return
	}

	eventID, err := s.calendarClient.InsertEvent(ctx, event)
	if err != nil {
		s.logger.Error("createCalendarEvent: insert failed for appointment id=%s: %v", a.ID, err)
		return
	}

	if err := s.appointmentRepo.SetCalendarEventID(ctx, a.ID, &eventID); err != nil {
		s.logger.Error("createCalendarEvent: failed to store event id for appointment id=%s: %v", a.ID, err)
		return
	}
	a.CalendarEventID = &eventID
}

// deleteCalendarEvent removes the mirrored event after a cancellation.
// Best-effort, same as createCalendarEvent.
func (s *Service) deleteCalendarEvent(ctx context.Context, a *domain.Appointment) {
	if a.CalendarEventID == nil {
		return
	}

	if err := s.calendarClient.DeleteEvent(ctx, *a.CalendarEventID); err != nil {
		s.logger.Error("deleteCalendarEvent: delete failed for appointment id=%s, event=%s: %v",
			a.ID, *a.CalendarEventID, err)
		return
	}

	if err := s.appointmentRepo.SetCalendarEventID(ctx, a.ID, nil); err != nil {
		s.logger.Error("deleteCalendarEvent: failed to clear event id for appointment id=%s: %v", a.ID, err)
		return
	}
	a.CalendarEventID = nil
}

func (s *Service) buildCalendarEvent(a *domain.Appointment) (*googlecalendar.Event, error) {
	loc, err := time.LoadLocation(s.studio.Timezone)
	if err != nil {
		loc = time.UTC
	}

	startMinutes, err := a.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %v", a.StartTime, err)
	}

	d := a.AppointmentDate
	start := time.Date(d.Year(), d.Month(), d.Day(), startMinutes/60, startMinutes%60, 0, 0, loc)
	end := start.Add(time.Duration(a.DurationMinutes) * time.Minute)

	phone := "Não informado"
	if a.ClientPhone != nil {
		phone = *a.ClientPhone
	}
	notesLine := ""
	if a.Notes != nil && *a.Notes != "" {
		notesLine = fmt.Sprintf("\n📝 Observações: %s\n", *a.Notes)
	}

	description := fmt.Sprintf(`🌟 %s - Agendamento Confirmado

👤 Cliente: %s
📧 Email: %s
📞 Telefone: %s
💆 Serviço: %s
⏱️ Duração: %d minutos
💰 Valor: €%.2f
%s`,
		s.studio.Name,
		a.ClientName,
		a.ClientEmail,
		phone,
		a.ServiceName,
		a.DurationMinutes,
		a.ServicePrice,
		notesLine,
	)

	return &googlecalendar.Event{
		Summary:     fmt.Sprintf("%s - %s", a.ServiceName, a.ClientName),
		Description: description,
		Location:    s.studio.Address,
		Start: googlecalendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.studio.Timezone,
		},
		End: googlecalendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.studio.Timezone,
		},
		Attendees: []googlecalendar.Attendee{
			{
				Email:          a.ClientEmail,
				DisplayName:    a.ClientName,
				ResponseStatus: "accepted",
			},
		},
		Reminders: &googlecalendar.Reminders{
			UseDefault: false,
			Overrides: []googlecalendar.ReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
				{Method: "popup", Minutes: 15},
			},
		},
		// green marks confirmed sessions
		ColorID: "2",
	}, nil
}
