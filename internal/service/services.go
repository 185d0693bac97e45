package service

import (
	"fmt"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/store"
)

type Services struct {
	Credentials CredentialService
	Accounts    AccountService
	Sessions    SessionService
	AppInfo     AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	credentials, err := NewCredentialService(storages.Sessions, cfg.Auth, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating credential service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		Credentials: credentials,
		Accounts:    NewAccountService(storages.Users, credentials, cfg.App.PageSize, logger),
		Sessions:    NewSessionService(storages.Users, credentials, logger),
		AppInfo:     appInfo,
	}, nil
}
