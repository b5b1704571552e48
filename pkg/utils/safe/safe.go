package safe

import (
	"context"
	"io"
	"log/slog"

	"github.com/vidtalk-lab/vidtalk/pkg/utils/logging"
)

func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

func Remove(ctx context.Context, remove func() error) {
	if err := remove(); err != nil {
		logging.From(ctx).Error("Failed to remove", slog.Any("error", err))
	}
}
