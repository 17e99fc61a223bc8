package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const triggerHTTP = "http"

// Use case handlers the server delegates to. The command and query handlers
// satisfy them through their pointer receivers.
type (
	BranchCreator interface {
		Handle(ctx context.Context, cmd commands.CreateBranchCommand) error
	}
	CourierCreator interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
	}
	ParcelCreator interface {
		Handle(ctx context.Context, cmd commands.CreateParcelCommand) error
	}
	TransitionApplier interface {
		Handle(ctx context.Context, cmd commands.ApplyTransitionCommand) ([]parcel.TrackEntry, error)
	}
	ParcelAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignParcelCommand) error
	}
	AggregationRunner interface {
		Handle(ctx context.Context, cmd commands.RunAggregationCommand) (commands.AggregationReport, error)
	}
	ParcelTracker interface {
		Handle(ctx context.Context, query queries.GetParcelTrackingQuery) (queries.GetParcelTrackingQueryResponse, error)
	}
	BranchPerformanceReader interface {
		Handle(ctx context.Context, query queries.GetBranchPerformanceQuery) (queries.GetBranchPerformanceQueryResponse, error)
	}
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateBranch         BranchCreator
	CreateCourier        CourierCreator
	CreateParcel         ParcelCreator
	ApplyTransition      TransitionApplier
	AssignParcel         ParcelAssigner
	RunAggregation       AggregationRunner
	GetParcelTracking    ParcelTracker
	GetBranchPerformance BranchPerformanceReader
}

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// CreateBranch handles POST /api/v1/branches.
func (s *Server) CreateBranch(ctx echo.Context) error {
	var body servers.CreateBranchJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := branch.ParseKind(string(body.Kind))
	if err != nil {
		return s.fail(ctx, err)
	}

	promised := time.Duration(body.PromisedDeliveryHours * float64(time.Hour))
	cmd, err := commands.NewCreateBranchCommand(kind, body.Name, promised)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateBranch.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.BranchID().Bytes()})
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body servers.CreateCourierJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	branchID, err := toKernel(body.BranchId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, branchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.CourierID().Bytes()})
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body servers.CreateParcelJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	parcelType, err := parcel.ParseType(string(body.Type))
	if err != nil {
		return s.fail(ctx, err)
	}
	origin, err := toKernel(body.OriginBranchId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateParcelCommand(parcelType, origin)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.CreateParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: cmd.ParcelID().Bytes()})
}

// ApplyTransition handles POST /api/v1/parcels/{parcelId}/transitions.
func (s *Server) ApplyTransition(
	ctx echo.Context,
	parcelID servers.ParcelId,
	params servers.ApplyTransitionParams,
) error {
	var body servers.ApplyTransitionJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernel(parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := parcel.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}
	branchID, err := toOptionalKernel(body.BranchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	requester, err := toOptionalKernel(params.XRequesterBranch)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewApplyTransitionCommand(id, status, branchID, requester)
	if err != nil {
		return s.fail(ctx, err)
	}

	track, err := s.handlers.ApplyTransition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.TrackEntry, len(track))
	for i, entry := range track {
		response[i] = servers.TrackEntry{
			Status:    entry.Status().String(),
			BranchId:  fromOptionalKernel(entry.BranchID()),
			Timestamp: entry.Timestamp(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignParcel handles POST /api/v1/parcels/{parcelId}/assignment.
func (s *Server) AssignParcel(ctx echo.Context, parcelID servers.ParcelId) error {
	var body servers.AssignParcelJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	id, err := toKernel(parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}
	courierID, err := toKernel(body.CourierId)
	if err != nil {
		return s.fail(ctx, err)
	}
	deliveryType, err := parcel.ParseDeliveryType(string(body.DeliveryType))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAssignParcelCommand(id, courierID, deliveryType)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.handlers.AssignParcel.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetParcelTracking handles GET /api/v1/parcels/{parcelId}.
func (s *Server) GetParcelTracking(ctx echo.Context, parcelID servers.ParcelId) error {
	id, err := toKernel(parcelID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetParcelTrackingQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	tracking, err := s.handlers.GetParcelTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.ParcelTracking{
		Id:         tracking.ID.Bytes(),
		Type:       tracking.Type,
		Status:     tracking.Status,
		AssignedTo: fromOptionalKernel(tracking.AssignedTo),
		Track:      make([]servers.TrackEntry, len(tracking.Track)),
	}
	if tracking.DeliveryType != "" {
		deliveryType := tracking.DeliveryType
		response.DeliveryType = &deliveryType
	}
	for i, entry := range tracking.Track {
		response.Track[i] = servers.TrackEntry{
			Status:    entry.Status,
			BranchId:  fromOptionalKernel(entry.BranchID),
			Timestamp: entry.Timestamp,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetBranchPerformance handles GET /api/v1/branches/{branchId}/performance.
func (s *Server) GetBranchPerformance(
	ctx echo.Context,
	branchID servers.BranchId,
	params servers.GetBranchPerformanceParams,
) error {
	id, err := toKernel(branchID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetBranchPerformanceQuery(id, params.From.Time, params.To.Time)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.GetBranchPerformance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	daily := make([]servers.DailyPerformance, len(result.Daily))
	for i, d := range result.Daily {
		daily[i] = servers.DailyPerformance{
			Day:         openapi_types.Date{Time: d.Day},
			Performance: toPerformance(d.Performance),
		}
	}

	return ctx.JSON(http.StatusOK, servers.BranchPerformance{
		BranchId:              result.BranchID.Bytes(),
		Kind:                  result.Kind,
		Name:                  result.Name,
		PromisedDeliveryHours: result.PromisedDeliveryTime.Hours(),
		OnTimeRate:            result.OnTimeRate,
		Cumulative:            toPerformance(result.Cumulative),
		Daily:                 daily,
	})
}

// RunAggregation handles POST /api/v1/aggregations. The run is synchronous;
// 202 reports that it finished, not that it was scheduled.
func (s *Server) RunAggregation(ctx echo.Context) error {
	report, err := s.handlers.RunAggregation.Handle(
		ctx.Request().Context(),
		commands.NewRunAggregationCommand(triggerHTTP),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, servers.AggregationReport{
		StartedAt:        report.StartedAt,
		Parcels:          report.Parcels,
		FailedParcels:    report.FailedParcels,
		SegmentsCredited: report.SegmentsCredited,
		EventsCredited:   report.EventsCredited,
		CreditsSkipped:   report.CreditsSkipped,
		Duplicates:       report.Duplicates,
	})
}

func toKernel(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toOptionalKernel(id *openapi_types.UUID) (*kernel.UUID, error) {
	return kernel.OptionalUUIDFromBytes(id)
}

func fromOptionalKernel(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func toPerformance(p branch.Performance) servers.Performance {
	return servers.Performance{
		TotalParcels:          p.TotalParcels,
		TotalDelivered:        p.TotalDelivered,
		OnTimeDeliveries:      p.OnTimeDeliveries,
		TotalPickups:          p.TotalPickups,
		DeliveryAttempts:      p.DeliveryAttempts,
		DamagedParcels:        p.DamagedParcels,
		LostParcels:           p.LostParcels,
		AverageDeliveryTime:   p.AverageDeliveryTime,
		AverageProcessingTime: p.AverageProcessingTime,
		AverageCustomerRating: p.AverageCustomerRating,
		ComplaintCount:        p.ComplaintCount,
		CustomerCount:         p.CustomerCount,
		AssignDeliveryCount:   p.AssignDeliveryCount,
	}
}
