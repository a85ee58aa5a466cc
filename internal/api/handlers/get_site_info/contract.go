package get_site_info

import (
	"context"

	"github.com/lotos-studio/LOTOS-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetSiteInfo(ctx context.Context) (*models.SiteInfoResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
