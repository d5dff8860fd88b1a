// Package di provides dependency injection configuration for the banner server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bannerdeck/banner-server/internal/config"
	"github.com/bannerdeck/banner-server/internal/di/providers"
	"github.com/bannerdeck/banner-server/internal/logger"
	"github.com/bannerdeck/banner-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBannerService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of the whole graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.BannerService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
