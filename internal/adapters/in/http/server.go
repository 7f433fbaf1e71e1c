package http

import (
	"errors"
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/challan"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/transit"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the HTTP surface of the challan engine.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler  commands.CreateShipmentCommandHandler
	cancelShipmentHandler  commands.CancelShipmentCommandHandler
	createChallanHandler   commands.CreateChallanCommandHandler
	assignToChallanHandler commands.AssignToChallanCommandHandler
	dispatchChallanHandler commands.DispatchChallanCommandHandler
	removeFromTransit      commands.RemoveFromTransitCommandHandler
	bulkRemoveFromTransit  commands.BulkRemoveFromTransitCommandHandler
	advanceMilestone       commands.AdvanceMilestoneCommandHandler

	// Query handlers
	getAvailableShipments queries.GetAvailableShipmentsQueryHandler
	getChallanSummary     queries.GetChallanSummaryQueryHandler
	getTransitRecords     queries.GetTransitRecordsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	createChallanHandler commands.CreateChallanCommandHandler,
	assignToChallanHandler commands.AssignToChallanCommandHandler,
	dispatchChallanHandler commands.DispatchChallanCommandHandler,
	removeFromTransit commands.RemoveFromTransitCommandHandler,
	bulkRemoveFromTransit commands.BulkRemoveFromTransitCommandHandler,
	advanceMilestone commands.AdvanceMilestoneCommandHandler,
	getAvailableShipments queries.GetAvailableShipmentsQueryHandler,
	getChallanSummary queries.GetChallanSummaryQueryHandler,
	getTransitRecords queries.GetTransitRecordsQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:  createShipmentHandler,
		cancelShipmentHandler:  cancelShipmentHandler,
		createChallanHandler:   createChallanHandler,
		assignToChallanHandler: assignToChallanHandler,
		dispatchChallanHandler: dispatchChallanHandler,
		removeFromTransit:      removeFromTransit,
		bulkRemoveFromTransit:  bulkRemoveFromTransit,
		advanceMilestone:       advanceMilestone,
		getAvailableShipments:  getAvailableShipments,
		getChallanSummary:      getChallanSummary,
		getTransitRecords:      getTransitRecords,
	}
}

// RegisterRoutes binds every handler under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/branches/:branchId/available-shipments", s.GetAvailableShipments)

	v1.POST("/challans", s.CreateChallan)
	v1.GET("/challans/:challanId/summary", s.GetChallanSummary)
	v1.POST("/challans/:challanId/assignments", s.AssignToChallan)
	v1.POST("/challans/:challanId/dispatch", s.DispatchChallan)
	v1.GET("/challans/:challanId/transits", s.GetChallanTransits)

	v1.DELETE("/transits/:transitId", s.RemoveFromTransit)
	v1.POST("/transits/bulk-remove", s.BulkRemoveFromTransit)
	v1.POST("/transits/:transitId/advance", s.AdvanceMilestone)

	v1.POST("/shipments", s.CreateShipment)
	v1.DELETE("/shipments/:shipmentId", s.CancelShipment)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeDomainError maps use-case failures to HTTP statuses: missing objects to
// 404, a dispatched challan's lock to 409, everything else to 500.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, challan.ErrChallanLocked),
		errors.Is(err, challan.ErrChallanAlreadyDispatched),
		errors.Is(err, commands.ErrShipmentAlreadyInTransit),
		errors.Is(err, transit.ErrTransitAlreadyDeactivated):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, commands.ErrEmptySelection),
		errors.Is(err, commands.ErrShipmentNotLoadable),
		errors.Is(err, commands.ErrShipmentNotAtBranch),
		errors.Is(err, commands.ErrShipmentInTransit),
		errors.Is(err, commands.ErrDispatchEmptyChallan),
		errors.Is(err, transit.ErrMilestoneNotOnRoute),
		errors.Is(err, transit.ErrMilestoneOutOfOrder):
		return badRequest(ctx, err.Error())
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
	}
}

type availableShipmentResponse struct {
	ShipmentID      string  `json:"shipmentId"`
	GRNo            string  `json:"grNo"`
	DestinationCity string  `json:"destinationCity"`
	Packages        int     `json:"packages"`
	WeightKg        float64 `json:"weightKg"`
	Amount          float64 `json:"amount"`
	PaymentMode     string  `json:"paymentMode"`
	DeliveryType    string  `json:"deliveryType"`
}

// GetAvailableShipments handles GET /api/v1/branches/:branchId/available-shipments.
// The optional sort parameter accepts "gr" (default) and "destination".
func (s *Server) GetAvailableShipments(ctx echo.Context) error {
	branchID, err := kernel.UUIDFromString(ctx.Param("branchId"))
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+err.Error())
	}

	sortMode := services.SortByGR
	switch ctx.QueryParam("sort") {
	case "", "gr":
	case "destination":
		sortMode = services.SortByDestination
	default:
		return badRequest(ctx, "Unknown sort mode: "+ctx.QueryParam("sort"))
	}

	query, err := queries.NewGetAvailableShipmentsQuery(branchID, sortMode)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getAvailableShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]availableShipmentResponse, len(rows))
	for i, row := range rows {
		response[i] = availableShipmentResponse{
			ShipmentID:      row.ShipmentID.String(),
			GRNo:            row.GRNo,
			DestinationCity: row.DestinationCity,
			Packages:        row.Packages,
			WeightKg:        row.WeightKg,
			Amount:          row.Amount,
			PaymentMode:     row.PaymentMode,
			DeliveryType:    row.DeliveryType,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type createShipmentRequest struct {
	GRNo            string  `json:"grNo"`
	OriginBranchID  string  `json:"originBranchId"`
	DestinationCity string  `json:"destinationCity"`
	Packages        int     `json:"packages"`
	WeightKg        float64 `json:"weightKg"`
	Amount          float64 `json:"amount"`
	PaymentMode     string  `json:"paymentMode"`
	DeliveryType    string  `json:"deliveryType"`
	Source          string  `json:"source"`
	Stage           string  `json:"stage"`
}

type createShipmentResponse struct {
	ShipmentID string `json:"shipmentId"`
}

// CreateShipment handles POST /api/v1/shipments - books a shipment.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	grNo, err := kernel.NewGRNo(req.GRNo)
	if err != nil {
		return badRequest(ctx, "Invalid GR number: "+err.Error())
	}

	originBranchID, err := kernel.UUIDFromString(req.OriginBranchID)
	if err != nil {
		return badRequest(ctx, "Invalid origin branch id: "+err.Error())
	}

	paymentMode, err := shipment.PaymentModeFromString(req.PaymentMode)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	deliveryType, err := shipment.DeliveryTypeFromString(req.DeliveryType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	source, err := shipment.SourceFromString(req.Source)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stage, err := shipment.StageFromString(req.Stage)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, grNo, originBranchID,
		req.DestinationCity, req.Packages, req.WeightKg, req.Amount,
		paymentMode, deliveryType, source, stage)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, createShipmentResponse{ShipmentID: shipmentID.String()})
}

// CancelShipment handles DELETE /api/v1/shipments/:shipmentId - cancels a booking.
// Refused while the shipment rides on an active transit record.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createChallanRequest struct {
	ChallanBookID string `json:"challanBookId"`
	TruckNo       string `json:"truckNo"`
	DriverName    string `json:"driverName"`
	OwnerName     string `json:"ownerName"`
}

type createChallanResponse struct {
	ChallanID string `json:"challanId"`
	ChallanNo string `json:"challanNo"`
}

// CreateChallan handles POST /api/v1/challans - opens a new challan, drawing
// its number from the referenced challan book.
func (s *Server) CreateChallan(ctx echo.Context) error {
	var req createChallanRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	challanBookID, err := kernel.UUIDFromString(req.ChallanBookID)
	if err != nil {
		return badRequest(ctx, "Invalid challan book id: "+err.Error())
	}

	challanID := kernel.NewUUID()
	cmd, err := commands.NewCreateChallanCommand(challanID, challanBookID,
		req.TruckNo, req.DriverName, req.OwnerName)
	if err != nil {
		return badRequest(ctx, "Invalid challan data: "+err.Error())
	}

	result, err := s.createChallanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createChallanResponse{
		ChallanID: challanID.String(),
		ChallanNo: result.ChallanNo,
	})
}

type paymentModeSplitResponse struct {
	PaymentMode string  `json:"paymentMode"`
	Bilties     int     `json:"bilties"`
	Packages    int     `json:"packages"`
	WeightKg    float64 `json:"weightKg"`
	Amount      float64 `json:"amount"`
}

type challanSummaryResponse struct {
	ChallanID       string                     `json:"challanId"`
	ChallanNo       string                     `json:"challanNo"`
	TruckNo         string                     `json:"truckNo"`
	DriverName      string                     `json:"driverName"`
	OwnerName       string                     `json:"ownerName"`
	TotalBiltyCount int                        `json:"totalBiltyCount"`
	IsDispatched    bool                       `json:"isDispatched"`
	StatusLabel     string                     `json:"statusLabel"`
	Splits          []paymentModeSplitResponse `json:"splits"`
	TotalPackages   int                        `json:"totalPackages"`
	TotalWeightKg   float64                    `json:"totalWeightKg"`
	TotalAmount     float64                    `json:"totalAmount"`
}

// GetChallanSummary handles GET /api/v1/challans/:challanId/summary.
func (s *Server) GetChallanSummary(ctx echo.Context) error {
	challanID, err := kernel.UUIDFromString(ctx.Param("challanId"))
	if err != nil {
		return badRequest(ctx, "Invalid challan id: "+err.Error())
	}

	query, err := queries.NewGetChallanSummaryQuery(challanID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summary, err := s.getChallanSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	splits := make([]paymentModeSplitResponse, len(summary.Splits))
	for i, split := range summary.Splits {
		splits[i] = paymentModeSplitResponse{
			PaymentMode: split.PaymentMode,
			Bilties:     split.Bilties,
			Packages:    split.Packages,
			WeightKg:    split.WeightKg,
			Amount:      split.Amount,
		}
	}

	return ctx.JSON(http.StatusOK, challanSummaryResponse{
		ChallanID:       summary.ChallanID.String(),
		ChallanNo:       summary.ChallanNo,
		TruckNo:         summary.TruckNo,
		DriverName:      summary.DriverName,
		OwnerName:       summary.OwnerName,
		TotalBiltyCount: summary.TotalBiltyCount,
		IsDispatched:    summary.IsDispatched,
		StatusLabel:     summary.StatusLabel,
		Splits:          splits,
		TotalPackages:   summary.TotalPackages,
		TotalWeightKg:   summary.TotalWeightKg,
		TotalAmount:     summary.TotalAmount,
	})
}

type assignToChallanRequest struct {
	BranchID      string   `json:"branchId"`
	ChallanBookID string   `json:"challanBookId"`
	ShipmentIDs   []string `json:"shipmentIds"`
	DirectLane    bool     `json:"directLane"`
}

type assignToChallanResponse struct {
	NewCount           int      `json:"newCount"`
	AssignedTransitIDs []string `json:"assignedTransitIds"`
}

// AssignToChallan handles POST /api/v1/challans/:challanId/assignments - loads
// a batch of shipments onto the challan. The batch is atomic.
func (s *Server) AssignToChallan(ctx echo.Context) error {
	challanID, err := kernel.UUIDFromString(ctx.Param("challanId"))
	if err != nil {
		return badRequest(ctx, "Invalid challan id: "+err.Error())
	}

	var req assignToChallanRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return badRequest(ctx, "Invalid branch id: "+err.Error())
	}

	challanBookID, err := kernel.UUIDFromString(req.ChallanBookID)
	if err != nil {
		return badRequest(ctx, "Invalid challan book id: "+err.Error())
	}

	shipmentIDs, err := parseUUIDs(req.ShipmentIDs)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id: "+err.Error())
	}

	cmd, err := commands.NewAssignToChallanCommand(branchID, challanID, challanBookID,
		shipmentIDs, req.DirectLane)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	result, err := s.assignToChallanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, assignToChallanResponse{
		NewCount:           result.NewCount,
		AssignedTransitIDs: formatUUIDs(result.AssignedTransitIDs),
	})
}

// DispatchChallan handles POST /api/v1/challans/:challanId/dispatch - locks the
// challan and stamps OutFromBranch1 on every active record.
func (s *Server) DispatchChallan(ctx echo.Context) error {
	challanID, err := kernel.UUIDFromString(ctx.Param("challanId"))
	if err != nil {
		return badRequest(ctx, "Invalid challan id: "+err.Error())
	}

	cmd, err := commands.NewDispatchChallanCommand(challanID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if handleErr := s.dispatchChallanHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeDomainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type milestoneResponse struct {
	Milestone string     `json:"milestone"`
	Set       bool       `json:"set"`
	At        *time.Time `json:"at,omitempty"`
}

type transitRecordResponse struct {
	TransitID    string              `json:"transitId"`
	GRNo         string              `json:"grNo"`
	ChallanID    string              `json:"challanId"`
	ChallanNo    string              `json:"challanNo"`
	DeliveryType string              `json:"deliveryType"`
	RouteClass   string              `json:"routeClass"`
	StatusLabel  string              `json:"statusLabel"`
	Delivered    bool                `json:"delivered"`
	Milestones   []milestoneResponse `json:"milestones"`
}

// GetChallanTransits handles GET /api/v1/challans/:challanId/transits - lists
// the challan's active transit records in GR order.
func (s *Server) GetChallanTransits(ctx echo.Context) error {
	challanID, err := kernel.UUIDFromString(ctx.Param("challanId"))
	if err != nil {
		return badRequest(ctx, "Invalid challan id: "+err.Error())
	}

	query, err := queries.NewGetTransitRecordsByChallanQuery(challanID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getTransitRecords.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]transitRecordResponse, len(rows))
	for i, row := range rows {
		milestones := make([]milestoneResponse, len(row.Milestones))
		for j, m := range row.Milestones {
			milestones[j] = milestoneResponse{Milestone: m.Milestone, Set: m.Set, At: m.At}
		}

		response[i] = transitRecordResponse{
			TransitID:    row.TransitID.String(),
			GRNo:         row.GRNo,
			ChallanID:    row.ChallanID.String(),
			ChallanNo:    row.ChallanNo,
			DeliveryType: row.DeliveryType,
			RouteClass:   row.RouteClass,
			StatusLabel:  row.StatusLabel,
			Delivered:    row.Delivered,
			Milestones:   milestones,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type removeFromTransitRequest struct {
	Reason string `json:"reason"`
}

type removeFromTransitResponse struct {
	NewCount int `json:"newCount"`
}

// RemoveFromTransit handles DELETE /api/v1/transits/:transitId - takes one
// shipment off its challan. The reason is mandatory.
func (s *Server) RemoveFromTransit(ctx echo.Context) error {
	transitID, err := kernel.UUIDFromString(ctx.Param("transitId"))
	if err != nil {
		return badRequest(ctx, "Invalid transit id: "+err.Error())
	}

	var req removeFromTransitRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRemoveFromTransitCommand(transitID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid removal data: "+err.Error())
	}

	result, err := s.removeFromTransit.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, removeFromTransitResponse{NewCount: result.NewCount})
}

type bulkRemoveRequest struct {
	TransitIDs []string `json:"transitIds"`
	Reason     string   `json:"reason"`
}

type removalFailureResponse struct {
	TransitID string `json:"transitId"`
	Error     string `json:"error"`
}

type bulkRemoveResponse struct {
	Removed []string                 `json:"removed"`
	Failed  []removalFailureResponse `json:"failed"`
}

// BulkRemoveFromTransit handles POST /api/v1/transits/bulk-remove. Successes
// commit together; a partly failed batch reports 207 with per-record outcomes.
func (s *Server) BulkRemoveFromTransit(ctx echo.Context) error {
	var req bulkRemoveRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	transitIDs, err := parseUUIDs(req.TransitIDs)
	if err != nil {
		return badRequest(ctx, "Invalid transit id: "+err.Error())
	}

	cmd, err := commands.NewBulkRemoveFromTransitCommand(transitIDs, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid removal data: "+err.Error())
	}

	result, err := s.bulkRemoveFromTransit.Handle(ctx.Request().Context(), cmd)
	if err != nil && !errors.Is(err, commands.ErrPartialBatchFailure) && !errors.Is(err, commands.ErrBatchFailed) {
		return writeDomainError(ctx, err)
	}

	failed := make([]removalFailureResponse, len(result.Failed))
	for i, failure := range result.Failed {
		failed[i] = removalFailureResponse{
			TransitID: failure.TransitID.String(),
			Error:     failure.Err.Error(),
		}
	}

	// The result carries the per-record split even when every removal failed.
	status := http.StatusOK
	switch {
	case errors.Is(err, commands.ErrBatchFailed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrPartialBatchFailure):
		status = http.StatusMultiStatus
	}

	return ctx.JSON(status, bulkRemoveResponse{
		Removed: formatUUIDs(result.Removed),
		Failed:  failed,
	})
}

type advanceMilestoneRequest struct {
	Milestone string `json:"milestone"`
}

type advanceMilestoneResponse struct {
	StatusLabel string `json:"statusLabel"`
	Delivered   bool   `json:"delivered"`
}

// AdvanceMilestone handles POST /api/v1/transits/:transitId/advance - records
// delivery progress on one transit record.
func (s *Server) AdvanceMilestone(ctx echo.Context) error {
	transitID, err := kernel.UUIDFromString(ctx.Param("transitId"))
	if err != nil {
		return badRequest(ctx, "Invalid transit id: "+err.Error())
	}

	var req advanceMilestoneRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	milestone, err := transit.MilestoneFromString(req.Milestone)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAdvanceMilestoneCommand(transitID, milestone)
	if err != nil {
		return badRequest(ctx, "Invalid advance data: "+err.Error())
	}

	result, err := s.advanceMilestone.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, advanceMilestoneResponse{
		StatusLabel: result.StatusLabel,
		Delivered:   result.Delivered,
	})
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func formatUUIDs(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
