package injector

import (
	"context"

	"github.com/google/wire"

	"github.com/zeusync/roomscan/internal/core/observability/log"
	"github.com/zeusync/roomscan/internal/core/scenario"
	"github.com/zeusync/roomscan/internal/core/scene"
	"github.com/zeusync/roomscan/internal/core/sensor"
	"github.com/zeusync/roomscan/internal/server"
)

// App is everything a roomscan process runs with.
type App struct {
	Config *scenario.Config
	Logger log.Log
	Scene  *scene.Scene
	Robot  *sensor.Robot
	Server *server.Server
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideScene,
	ProvideRobot,
	ProvideServerConfig,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *scenario.Config) log.Log {
	return log.New(cfg.Log.Level)
}

// ProvideScene hands out the process-wide scene. It is created with the
// configured logger the first time it is requested.
func ProvideScene(logger log.Log) *scene.Scene {
	return scene.Instance(scene.WithLogger(logger))
}

func ProvideRobot(ctx context.Context, cfg *scenario.Config, scn *scene.Scene, logger log.Log) (*sensor.Robot, error) {
	return scenario.Build(ctx, cfg, scn, logger)
}

func ProvideServerConfig(cfg *scenario.Config) server.Config {
	config := server.DefaultServerConfig()
	if cfg.Server.ListenAddr != "" {
		config.ListenAddr = cfg.Server.ListenAddr
	}
	return config
}

func ProvideServer(config server.Config, scn *scene.Scene, robot *sensor.Robot, logger log.Log) (*server.Server, error) {
	return server.NewServer(config, scn, robot, logger)
}
