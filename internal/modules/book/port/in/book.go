package in

import (
	"context"

	"readtrack/internal/modules/book/dto"
)

type Usecase interface {
	Load(ctx context.Context, input dto.LoadInput) (dto.BookOutput, error)
	Watch(ctx context.Context, input dto.WatchInput) (<-chan struct{}, error)
}
