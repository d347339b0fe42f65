package bid

import (
	"context"
	"net/http"

	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/delivery/http/controllers/middleware"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/models"
	"github.com/JohnMutemi/sharpQuill-Back-end/internal/service/access"
	"github.com/JohnMutemi/sharpQuill-Back-end/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BidService interface {
	Place(ctx context.Context, caller access.Caller, assignmentID uuid.UUID, amount float64) (*models.Bid, error)
	List(ctx context.Context, caller access.Caller) ([]models.BidView, error)
	ListForAssignment(ctx context.Context, caller access.Caller, assignmentID uuid.UUID) ([]models.BidView, error)
	Accept(ctx context.Context, caller access.Caller, bidID uuid.UUID) (*models.Bid, error)
	Reject(ctx context.Context, caller access.Caller, bidID uuid.UUID) (*models.Bid, error)
}

type BidHandler struct {
	log     logger.Log
	service BidService
}

func NewBidHandler(l logger.Log, s BidService) *BidHandler {
	return &BidHandler{log: l, service: s}
}

type placeBidRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id" binding:"required"`
	Amount       float64   `json:"amount" binding:"required"`
}

func (h *BidHandler) Place(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input placeBidRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	bid, err := h.service.Place(c.Request.Context(), caller, input.AssignmentID, input.Amount)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, bid)
}

func (h *BidHandler) List(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	bids, err := h.service.List(c.Request.Context(), caller)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) ListForAssignment(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	assignmentID, err := uuid.Parse(c.Param("assignment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid assignment_id"})
		return
	}
	bids, err := h.service.ListForAssignment(c.Request.Context(), caller, assignmentID)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bids)
}

func (h *BidHandler) Accept(c *gin.Context) {
	h.decide(c, h.service.Accept)
}

func (h *BidHandler) Reject(c *gin.Context) {
	h.decide(c, h.service.Reject)
}

func (h *BidHandler) decide(c *gin.Context, op func(context.Context, access.Caller, uuid.UUID) (*models.Bid, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	bidID, err := uuid.Parse(c.Param("bid_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid bid_id"})
		return
	}
	bid, err := op(c.Request.Context(), caller, bidID)
	if err != nil {
		controllers.WriteError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, bid)
}
