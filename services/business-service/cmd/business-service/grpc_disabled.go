//go:build !protogen

package main

import (
	"context"
	"log/slog"

	"github.com/sadia-akter/trimly/libs/db"
	"github.com/sadia-akter/trimly/services/business-service/internal/storage"
)

func startGrpcServer(_ context.Context, _ *slog.Logger, _ *db.Pool, _ *storage.Repository) error {
	return nil
}
