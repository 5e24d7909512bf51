// Package http exposes the clearance-order lifecycle over a REST API.
//
// Every mutating endpoint identifies its caller through the X-Actor-Id and
// X-Actor-Role headers; the domain layer enforces what each role may do.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"clearance/internal/core/application/usecases/commands"
	"clearance/internal/core/application/usecases/queries"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/core/domain/model/order"
	"clearance/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const (
	actorIDHeader   = "X-Actor-Id"
	actorRoleHeader = "X-Actor-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	submitBidHandler         commands.SubmitBidCommandHandler
	acceptBidHandler         commands.AcceptBidCommandHandler
	markCheckpointHandler    commands.MarkCheckpointCommandHandler
	completeExecutionHandler commands.CompleteExecutionCommandHandler
	cancelExecutionHandler   commands.CancelExecutionCommandHandler
	reviewExecutionHandler   commands.ReviewExecutionCommandHandler
	reviewTransferHandler    commands.ReviewTransferCommandHandler
	routeBackHandler         commands.RouteBackCommandHandler

	// Query handlers
	getOrdersPageHandler  queries.GetOrdersPageQueryHandler
	getBrokerStatsHandler queries.GetBrokerStatsQueryHandler

	fileStore ports.FileStore
	validate  *validator.Validate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitBidHandler commands.SubmitBidCommandHandler,
	acceptBidHandler commands.AcceptBidCommandHandler,
	markCheckpointHandler commands.MarkCheckpointCommandHandler,
	completeExecutionHandler commands.CompleteExecutionCommandHandler,
	cancelExecutionHandler commands.CancelExecutionCommandHandler,
	reviewExecutionHandler commands.ReviewExecutionCommandHandler,
	reviewTransferHandler commands.ReviewTransferCommandHandler,
	routeBackHandler commands.RouteBackCommandHandler,
	getOrdersPageHandler queries.GetOrdersPageQueryHandler,
	getBrokerStatsHandler queries.GetBrokerStatsQueryHandler,
	fileStore ports.FileStore,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		submitBidHandler:         submitBidHandler,
		acceptBidHandler:         acceptBidHandler,
		markCheckpointHandler:    markCheckpointHandler,
		completeExecutionHandler: completeExecutionHandler,
		cancelExecutionHandler:   cancelExecutionHandler,
		reviewExecutionHandler:   reviewExecutionHandler,
		reviewTransferHandler:    reviewTransferHandler,
		routeBackHandler:         routeBackHandler,
		getOrdersPageHandler:     getOrdersPageHandler,
		getBrokerStatsHandler:    getBrokerStatsHandler,
		fileStore:                fileStore,
		validate:                 validator.New(),
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:id/bids", s.SubmitBid)
	api.POST("/orders/:id/bids/:bidID/accept", s.AcceptBid)
	api.POST("/orders/:id/checkpoints/:step", s.MarkCheckpoint)
	api.POST("/orders/:id/complete", s.CompleteExecution)
	api.POST("/orders/:id/cancel", s.CancelExecution)
	api.POST("/orders/:id/review", s.ReviewExecution)
	api.POST("/orders/:id/transfer-review", s.ReviewTransfer)
	api.POST("/orders/:id/route", s.RouteBack)
	api.GET("/brokers/:id/stats", s.GetBrokerStats)
	api.POST("/attachments", s.UploadAttachment)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// CreateOrder handles POST /api/v1/orders - registers a new clearance order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	if role != order.RoleRequester {
		return badRequest(ctx, "only a requester may create orders")
	}

	var body CreateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(actorID, body.Location, body.LineItems)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID})
}

// SubmitBid handles POST /api/v1/orders/:id/bids - registers a broker's bid.
func (s *Server) SubmitBid(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body SubmitBidRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, err.Error())
	}

	value, err := decimal.NewFromString(body.Value)
	if err != nil {
		return badRequest(ctx, "bid value must be a decimal number")
	}

	cmd, err := commands.NewSubmitBidCommand(orderID, actorID, role, value)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bidID, err := s.submitBidHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: bidID})
}

// AcceptBid handles POST /api/v1/orders/:id/bids/:bidID/accept.
func (s *Server) AcceptBid(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	bidID, err := strconv.ParseInt(ctx.Param("bidID"), 10, 64)
	if err != nil {
		return badRequest(ctx, "bid id must be a positive integer")
	}

	cmd, err := commands.NewAcceptBidCommand(orderID, bidID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.acceptBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkCheckpoint handles POST /api/v1/orders/:id/checkpoints/:step.
func (s *Server) MarkCheckpoint(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	step, err := strconv.Atoi(ctx.Param("step"))
	if err != nil {
		return badRequest(ctx, "step must be an integer")
	}

	cmd, err := commands.NewMarkCheckpointCommand(orderID, actorID, role, step)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.markCheckpointHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteExecution handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteExecution(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteExecutionCommand(orderID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.completeExecutionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelExecution handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelExecution(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCancelExecutionCommand(orderID, actorID, role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.cancelExecutionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewExecution handles POST /api/v1/orders/:id/review - the
// customer-service verdict on an executed order.
func (s *Server) ReviewExecution(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body ReviewRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReviewExecutionCommand(
		orderID, actorID, role, body.Approved, body.Reason, body.Note, body.AttachmentURL,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.reviewExecutionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewTransfer handles POST /api/v1/orders/:id/transfer-review - the
// accounting verdict on a transferred order.
func (s *Server) ReviewTransfer(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body ReviewRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReviewTransferCommand(
		orderID, actorID, role, body.Approved, body.Reason, body.Note, body.AttachmentURL,
	)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.reviewTransferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RouteBack handles POST /api/v1/orders/:id/route - customer service routing
// a rejected order onward.
func (s *Server) RouteBack(ctx echo.Context) error {
	actorID, role, err := s.actor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	orderID, err := s.orderID(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var body RouteBackRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if err = s.validate.Struct(body); err != nil {
		return badRequest(ctx, err.Error())
	}

	route, err := order.ActionFromString(body.Route)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRouteBackCommand(orderID, actorID, role, route)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.routeBackHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders - a paginated listing with an optional
// status filter, decorated with actor display names.
func (s *Server) GetOrders(ctx echo.Context) error {
	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "page must be an integer")
		}
		page = parsed
	}

	perPage := 0
	if raw := ctx.QueryParam("per_page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "per_page must be an integer")
		}
		perPage = parsed
	}

	status := order.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		status = parsed
	}

	query, err := queries.NewGetOrdersPageQuery(page, perPage, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getOrdersPageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, result)
}

// GetBrokerStats handles GET /api/v1/brokers/:id/stats.
func (s *Server) GetBrokerStats(ctx echo.Context) error {
	brokerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "broker id must be a UUID")
	}

	query, err := queries.NewGetBrokerStatsQuery(brokerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	stats, err := s.getBrokerStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, stats)
}

// UploadAttachment handles POST /api/v1/attachments - stores a review
// attachment and returns the URL to reference from a note.
func (s *Server) UploadAttachment(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return badRequest(ctx, "multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(ctx, "cannot read uploaded file")
	}
	defer file.Close()

	url, err := s.fileStore.Save(ctx.Request().Context(), fileHeader.Filename, file)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"url": url})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actor reads the caller's identity from the request headers.
func (s *Server) actor(ctx echo.Context) (kernel.UUID, order.Role, error) {
	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(actorIDHeader))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}

	role, err := order.RoleFromString(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}

	return actorID, role, nil
}

func (s *Server) orderID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("order id must be a positive integer")
	}
	return id, nil
}
