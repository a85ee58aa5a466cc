package get_studio_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/lotos-studio/LOTOS-BookingService/internal/domain"
	"github.com/lotos-studio/LOTOS-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день; startDate/endDate - период.
func ToServiceRequest(dateStr, startDateStr, endDateStr, statusStr, includeInactiveStr string) (*models.GetStudioBookingsRequest, error) {
	req := &models.GetStudioBookingsRequest{
		IncludeInactive: false, // По умолчанию только активные
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if startDateStr != "" {
			startDate, err := time.Parse(domain.DateFormat, startDateStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &startDate
		}
		if endDateStr != "" {
			endDate, err := time.Parse(domain.DateFormat, endDateStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &endDate
		}
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
