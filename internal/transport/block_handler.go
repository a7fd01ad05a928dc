package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/service"
)

// APIPrefix is the path every REST route is mounted under.
const APIPrefix = "/api/v0.2"

const (
	defaultLimit     = 20
	defaultDirection = "newer"
)

// BlockHandler serves the block REST API.
type BlockHandler struct {
	service BlockService
	metrics Metrics
	logger  *zap.Logger
	e       *echo.Echo
}

// NewBlockHandler builds the echo router with the routes:
//
//	GET /api/v0.2/block?from=&limit=&direction=
//	GET /api/v0.2/block/:position
//	GET /api/v0.2/block/:position/transaction?from=&limit=&direction=
func NewBlockHandler(svc BlockService, metrics Metrics, logger *zap.Logger) *BlockHandler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	h := &BlockHandler{
		service: svc,
		metrics: metrics,
		logger:  logger,
		e:       e,
	}

	e.Use(middleware.Recover())
	e.Use(h.observe)

	api := e.Group(APIPrefix)
	api.GET("/block", h.ListBlocks)
	api.GET("/block/:position", h.GetBlock)
	api.GET("/block/:position/transaction", h.ListTransactions)

	return h
}

// ServeHTTP implements http.Handler.
func (h *BlockHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.e.ServeHTTP(w, r)
}

// GetBlock returns one block by number, "last_committed" or "last_finalized".
func (h *BlockHandler) GetBlock(c echo.Context) error {
	block, err := h.service.GetBlock(c.Request().Context(), c.Param("position"))
	if err != nil {
		return sendError(c, h.logger, err)
	}
	return sendResult(c, block)
}

// ListBlocks returns a page of blocks.
func (h *BlockHandler) ListBlocks(c echo.Context) error {
	ctx := c.Request().Context()

	limit, direction, err := parsePage(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	var from model.BlockNumber
	if raw := c.QueryParam("from"); raw != "" {
		number, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return sendError(c, h.logger, service.InvalidInput(service.CodeInvalidBlockPosition, service.ErrInvalidBlockPosition,
				"invalid from %q", raw))
		}
		from = model.BlockNumber(number)
	} else if direction == model.DirectionOlder {
		last, err := h.service.ResolvePosition(ctx, "last_committed")
		if err != nil {
			return sendError(c, h.logger, err)
		}
		from = last + 1
	}

	page, err := h.service.ListBlocks(ctx, model.PaginationQuery[model.BlockNumber]{
		From:      from,
		Limit:     limit,
		Direction: direction,
	})
	if err != nil {
		return sendError(c, h.logger, err)
	}
	return sendResult(c, page)
}

// ListTransactions returns a page of the transactions of one block, anchored at a transaction hash.
func (h *BlockHandler) ListTransactions(c echo.Context) error {
	limit, direction, err := parsePage(c)
	if err != nil {
		return sendError(c, h.logger, err)
	}

	raw := c.QueryParam("from")
	if raw == "" {
		return sendError(c, h.logger, service.InvalidInput(service.CodeInvalidTxHash, service.ErrInvalidTxHash,
			"from transaction hash is required"))
	}
	from, err := model.ParseHash(raw)
	if err != nil {
		return sendError(c, h.logger, service.InvalidInput(service.CodeInvalidTxHash, service.ErrInvalidTxHash,
			"invalid from transaction hash %q", raw))
	}

	page, err := h.service.ListTransactions(c.Request().Context(), c.Param("position"), model.PaginationQuery[model.TxHash]{
		From:      from,
		Limit:     limit,
		Direction: direction,
	})
	if err != nil {
		return sendError(c, h.logger, err)
	}
	return sendResult(c, page)
}

func parsePage(c echo.Context) (uint32, model.Direction, error) {
	limit := uint32(defaultLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, "", service.InvalidInput(service.CodeInvalidLimit, service.ErrInvalidLimit, "invalid limit %q", raw)
		}
		limit = uint32(parsed)
	}

	raw := c.QueryParam("direction")
	if raw == "" {
		raw = defaultDirection
	}
	direction, err := model.ParseDirection(raw)
	if err != nil {
		return 0, "", service.InvalidInput(service.CodeInvalidDirection, service.ErrInvalidDirection, "invalid direction %q", raw)
	}

	return limit, direction, nil
}

func (h *BlockHandler) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()
		err := next(c)

		code := c.Response().Status
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
		}
		h.metrics.ObserveRequest(c.Path(), c.Request().Method, code, started)
		return err
	}
}
