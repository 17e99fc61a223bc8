package ports

import (
	"context"

	"logistics/internal/core/domain/model/courier"
	"logistics/internal/core/domain/model/kernel"
)

type CourierRepository interface {
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists the courier and its assignment list.
	Update(ctx context.Context, courier *courier.Courier) error

	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)
}
