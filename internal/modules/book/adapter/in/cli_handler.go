package in

import (
	"context"

	"readtrack/internal/modules/book/dto"
	bookin "readtrack/internal/modules/book/port/in"
)

type CLIHandler struct {
	usecase bookin.Usecase
}

func NewCLIHandler(usecase bookin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context, location, policy string) (dto.BookOutput, error) {
	return h.usecase.Load(ctx, dto.LoadInput{Location: location, Policy: policy})
}
