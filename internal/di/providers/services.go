package providers

import (
	"github.com/samber/do/v2"

	"github.com/bannerdeck/banner-server/internal/logger"
	"github.com/bannerdeck/banner-server/internal/service"
	"github.com/bannerdeck/banner-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, log.Logger), nil
}

// ProvideBannerService provides the banner service.
func ProvideBannerService(i do.Injector) (*service.BannerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBannerService(storeHandle.Store, validator, log.Logger), nil
}
