package inventory

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
)

// RegisterFromRequest adapta el request HTTP al caso de uso Register(ctx, MovementInput).
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.Register(ctx, MovementInput{
		BatchID:               in.BatchID,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Quantity:              in.Quantity,
		Notes:                 in.Notes,
	})
	if err != nil {
		return nil, err
	}
	out := dto.MovementFromEntity(mov)
	return &out, nil
}
