//go:build wireinject
// +build wireinject

// File: cmd/server/wire.go
package main

import (
	"github.com/google/wire"

	"profilehub_backend/internal/account"
	"profilehub_backend/internal/app"
	"profilehub_backend/internal/config"
	"profilehub_backend/internal/identity"
	"profilehub_backend/internal/jobs"
	"profilehub_backend/internal/media"
	"profilehub_backend/internal/shared"
	"profilehub_backend/internal/user"
)

// initializeServer wires the full application graph for a given config.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		provideLogger,
		provideDatabase,

		identity.NewService,
		wire.Bind(new(shared.IdentityService), new(*identity.Service)),
		media.NewService,
		wire.Bind(new(shared.MediaService), new(*media.Service)),

		user.NewGORMRepository,
		user.NewService,
		user.NewHandler,

		account.NewService,
		account.NewHandler,

		jobs.NewVerificationCleanupJob,

		app.NewServer,
	)
	return nil, nil, nil
}
