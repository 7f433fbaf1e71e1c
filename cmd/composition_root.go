package cmd

import (
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.ShipmentTransitUoWFactory = FuncShipmentTransitUoWFactory(func() commands.ShipmentTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateChallanCommandHandler() commands.CreateChallanCommandHandler {
	var f commands.ChallanBookUoWFactory = FuncChallanBookUoWFactory(func() commands.ChallanBookUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateChallanCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignToChallanCommandHandler() commands.AssignToChallanCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignToChallanCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchChallanCommandHandler() commands.DispatchChallanCommandHandler {
	var f commands.ChallanTransitUoWFactory = FuncChallanTransitUoWFactory(func() commands.ChallanTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchChallanCommandHandler(f)
}

func (c *CompositionRoot) CreateRemoveFromTransitCommandHandler() commands.RemoveFromTransitCommandHandler {
	var f commands.ChallanTransitUoWFactory = FuncChallanTransitUoWFactory(func() commands.ChallanTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveFromTransitCommandHandler(f)
}

func (c *CompositionRoot) CreateBulkRemoveFromTransitCommandHandler() commands.BulkRemoveFromTransitCommandHandler {
	var f commands.ChallanTransitUoWFactory = FuncChallanTransitUoWFactory(func() commands.ChallanTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkRemoveFromTransitCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceMilestoneCommandHandler() commands.AdvanceMilestoneCommandHandler {
	var f commands.ChallanTransitUoWFactory = FuncChallanTransitUoWFactory(func() commands.ChallanTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceMilestoneCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileChallanCountsCommandHandler() commands.ReconcileChallanCountsCommandHandler {
	var f commands.ChallanTransitUoWFactory = FuncChallanTransitUoWFactory(func() commands.ChallanTransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileChallanCountsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetAvailableShipmentsQueryHandler() queries.GetAvailableShipmentsQueryHandler {
	return queries.NewGetAvailableShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetChallanSummaryQueryHandler() queries.GetChallanSummaryQueryHandler {
	return queries.NewGetChallanSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTransitRecordsQueryHandler() queries.GetTransitRecordsQueryHandler {
	return queries.NewGetTransitRecordsQueryHandler(c.gormDB)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncShipmentTransitUoWFactory func() commands.ShipmentTransitUoW

func (f FuncShipmentTransitUoWFactory) Create() commands.ShipmentTransitUoW {
	return f()
}

type FuncChallanBookUoWFactory func() commands.ChallanBookUoW

func (f FuncChallanBookUoWFactory) Create() commands.ChallanBookUoW {
	return f()
}

type FuncChallanTransitUoWFactory func() commands.ChallanTransitUoW

func (f FuncChallanTransitUoWFactory) Create() commands.ChallanTransitUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}
