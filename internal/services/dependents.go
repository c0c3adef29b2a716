package services

import (
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/hrcore/hrconsole/internal/config"
	"github.com/hrcore/hrconsole/internal/httpclient"
	"github.com/hrcore/hrconsole/internal/session"
)

type Services struct {
	AuthService     *AuthService
	ProfileService  *ProfileService
	FeedbackService *FeedbackService
	AbsenceService  *AbsenceService
	AdminService    *AdminService
}

type Dependens struct {
	Client   *httpclient.Client
	Session  *session.Store
	Logger   *slog.Logger
	Config   *config.Config
	Validate *validator.Validate
}

func NewServices(deps *Dependens) *Services {
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}

	return &Services{
		AuthService:     NewAuthService(deps),
		ProfileService:  NewProfileService(deps),
		FeedbackService: NewFeedbackService(deps),
		AbsenceService:  NewAbsenceService(deps),
		AdminService:    NewAdminService(deps),
	}
}
