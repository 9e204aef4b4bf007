//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"context"

	"github.com/google/wire"

	"github.com/zeusync/roomscan/internal/core/scenario"
)

func InitializeApp(ctx context.Context, cfg *scenario.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
