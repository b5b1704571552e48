package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vidtalk-lab/vidtalk/pkg/domain/interfaces"
	"github.com/vidtalk-lab/vidtalk/pkg/repository"
)

type Storage struct {
	memoryDir string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "memory-dir",
			Usage:       "Directory for conversation memory records",
			Sources:     cli.EnvVars("VIDTALK_MEMORY_DIR"),
			Value:       "data/memory",
			Destination: &x.memoryDir,
			Category:    "Storage",
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("memory_dir", x.memoryDir),
	)
}

func (x *Storage) Configure() (interfaces.Repository, error) {
	repo, err := repository.NewFilesystem(x.memoryDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open memory store", goerr.V("dir", x.memoryDir))
	}
	return repo, nil
}
