package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/common"
	"github.com/sevenstarlining/sevenstar-api/internal/api/dto/v1/contact"
	"github.com/sevenstarlining/sevenstar-api/internal/service"
	"github.com/sevenstarlining/sevenstar-api/internal/utils"
)

// MaxBodyBytes caps the size of a submission body
const MaxBodyBytes = 64 << 10

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		utils.HandleAPIError(c, errors.Join(service.ErrMalformedBody, err), http.StatusInternalServerError, common.MsgInternal)
		return
	}

	out := h.contactService.Submit(c.Request.Context(), body, utils.ClientIdentifier(c))

	switch o := out.(type) {
	case service.Sent:
		utils.HandleSuccess(c, common.MsgSent, contact.ContactResponse{ID: o.ID})
	case service.RateLimited:
		// the handler-level denial carries no retryAfter, only the gatekeeper's does
		utils.HandleRateLimited(c, -1)
	case service.Invalid:
		utils.HandleValidationError(c, o.Errors)
	case service.Unconfigured:
		c.JSON(http.StatusServiceUnavailable, common.NewErrorResponse(unconfiguredMessage(o.Phone)))
	case service.DeliveryFailed:
		utils.HandleAPIError(c, o.Err, http.StatusInternalServerError, common.MsgDeliveryFailed)
	case service.InternalError:
		utils.HandleAPIError(c, o.Err, http.StatusInternalServerError, common.MsgInternal)
	default:
		utils.HandleAPIError(c, nil, http.StatusInternalServerError, common.MsgInternal)
	}
}

func unconfiguredMessage(phone string) string {
	return common.MsgUnconfigured + strings.TrimSpace(phone)
}
