package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// Backfill starts reconstruction of an account and returns immediately
	// POST /backfill {"account_id": "<uuid>"}
	Backfill(c *gin.Context)

	// GetUserState lists the active state objects of an account
	// GET /users/:account_id/state
	GetUserState(c *gin.Context)

	// SubmitMessage enqueues one wire-format message
	// POST /messages?group=<group>&dedup_id=<id>
	SubmitMessage(c *gin.Context)
}

type handler struct {
	store      store.Store
	dispatcher backfill.Dispatcher
	queue      messagequeue.MessageQueue
}

// NewHandler creates a new REST API handler
func NewHandler(st store.Store, dispatcher backfill.Dispatcher, queue messagequeue.MessageQueue) Handler {
	return &handler{
		store:      st,
		dispatcher: dispatcher,
		queue:      queue,
	}
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) Backfill(c *gin.Context) {
	var req BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if req.AccountID == uuid.Nil {
		respondValidationError(c, "account_id is required")
		return
	}

	if err := h.dispatcher.Dispatch(c.Request.Context(), req.AccountID); err != nil {
		respondInternalError(c, err, "Failed to start backfill", logger.AccountID(req.AccountID))
		return
	}

	c.String(http.StatusOK, "OK")
}

func (h *handler) GetUserState(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("account_id"))
	if err != nil {
		respondBadRequest(c, "Invalid account ID", err.Error())
		return
	}

	state, err := h.store.GetUserState(c.Request.Context(), accountID)
	if err != nil {
		respondInternalError(c, err, "Failed to load user state", logger.AccountID(accountID))
		return
	}

	resp, err := newUserStateResponse(state)
	if err != nil {
		respondInternalError(c, err, "Failed to load user state", logger.AccountID(accountID))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) SubmitMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "Failed to read request body")
		return
	}

	msg, err := messagequeue.Decode(body)
	if err == nil {
		err = msg.Validate()
	}
	if err != nil {
		if errors.Is(err, messagequeue.ErrEmptyMessage) || errors.Is(err, messagequeue.ErrAmbiguousMessage) {
			respondValidationError(c, err.Error())
			return
		}
		respondBadRequest(c, "Invalid message", err.Error())
		return
	}

	group := c.Query("group")
	if group == "" {
		group = defaultGroup(msg)
	}
	dedupID := c.Query("dedup_id")
	if dedupID == "" {
		dedupID = msg.DedupID()
	}

	if err := h.queue.Send(c.Request.Context(), msg, dedupID, group); err != nil {
		respondQueueError(c, err, zap.String("kind", msg.Kind()), zap.String("group", group))
		return
	}

	logger.InfoCtx(c.Request.Context(), "Message submitted",
		zap.String("kind", msg.Kind()),
		zap.String("group", group),
		zap.String("dedup_id", dedupID))

	c.JSON(http.StatusAccepted, SubmitMessageResponse{
		Kind:    msg.Kind(),
		Group:   group,
		DedupID: dedupID,
	})
}

// defaultGroup places seed registrations in their account's group; facts
// without a known owner are grouped by their own key
func defaultGroup(msg *messagequeue.Message) string {
	if msg.RegisterMasterViewSeed != nil {
		return msg.RegisterMasterViewSeed.AccountID.String()
	}
	return msg.FactKey()
}
