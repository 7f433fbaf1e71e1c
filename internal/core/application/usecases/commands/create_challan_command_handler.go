package commands

import (
	"context"

	"freight/internal/core/domain/model/challan"
)

// CreateChallanResult reports the manifest number drawn for the new challan.
type CreateChallanResult struct {
	ChallanNo string
}

// CreateChallanCommandHandler handles opening a new challan. Drawing the number
// advances the book's counter, so the counter update and the challan insert
// commit together; a rollback returns the number to the sequence.
type CreateChallanCommandHandler struct {
	uowFactory ChallanBookUoWFactory
}

// NewCreateChallanCommandHandler creates a handler for challan creation.
// Requires a ChallanBookUoWFactory for transactional persistence.
func NewCreateChallanCommandHandler(uowFactory ChallanBookUoWFactory) CreateChallanCommandHandler {
	return CreateChallanCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the challan creation command.
// The new challan inherits the book's lane as its origin and destination and
// starts empty and undispatched.
func (h *CreateChallanCommandHandler) Handle(
	ctx context.Context,
	cmd CreateChallanCommand,
) (CreateChallanResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateChallanResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateChallanResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	challanRepo := uow.ChallanRepository()
	bookRepo := uow.ChallanBookRepository()

	book, err := bookRepo.Get(ctx, cmd.ChallanBookID())
	if err != nil {
		return CreateChallanResult{}, err
	}

	challanNo, err := book.NextChallanNo()
	if err != nil {
		return CreateChallanResult{}, err
	}

	newChallan, err := challan.NewChallan(
		cmd.ChallanID(),
		challanNo,
		book.FromBranchID(),
		book.ToBranchID(),
		cmd.TruckNo(),
		cmd.DriverName(),
		cmd.OwnerName(),
	)
	if err != nil {
		return CreateChallanResult{}, err
	}

	if err = bookRepo.Update(ctx, book); err != nil {
		return CreateChallanResult{}, err
	}

	if err = challanRepo.Add(ctx, newChallan); err != nil {
		return CreateChallanResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateChallanResult{}, err
	}

	return CreateChallanResult{ChallanNo: challanNo}, nil
}
