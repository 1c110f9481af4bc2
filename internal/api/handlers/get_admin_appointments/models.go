package get_admin_appointments

import (
	"net/url"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/appointments/models"
)

// ParseQuery builds the service request from the URL query. Supported
// params: date, startDate, endDate (YYYY-MM-DD), status,
// includeInactive.
func ParseQuery(query url.Values) (*models.GetAdminAppointmentsRequest, error) {
	req := &models.GetAdminAppointmentsRequest{}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if v := query.Get("startDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
	}

	if v := query.Get("endDate"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &date
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
