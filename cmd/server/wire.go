// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"poi_backend/internal/app"
	"poi_backend/internal/auth"
	"poi_backend/internal/category"
	"poi_backend/internal/config"
	"poi_backend/internal/image"
	"poi_backend/internal/poi"
	"poi_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideDatabase,
		provideImageStore,
		wire.Bind(new(poi.ImageStore), new(*image.Store)),

		// Session identity
		auth.NewJWTService,
		provideBlocklistConfig,
		auth.NewInMemoryBlocklistService,
		wire.Bind(new(auth.TokenBlocklistService), new(*auth.InMemoryBlocklistService)),

		// Identity
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		auth.NewHandler,

		// Categories
		category.NewGORMRepository,
		category.NewService,
		category.NewHandler,

		// POIs
		poi.NewGORMRepository,
		poi.NewService,
		poi.NewHandler,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
