package shared

import (
	"errors"

	"github.com/partnerconnector/internal/http/response"
	"github.com/partnerconnector/internal/logger"
	"github.com/partnerconnector/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog returns a logger carrying the request_id.
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError writes an error response and logs the cause when present.
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError maps service sentinel errors onto response codes.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "record not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "invalid credentials")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, "account disabled")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, "permission denied")
	case errors.Is(err, service.ErrTooManyAttempts):
		response.Error(c, response.CodeTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, service.ErrEmailTaken):
		response.Error(c, response.CodeConflict, "email already registered")
	case errors.Is(err, service.ErrAlreadyDistributed):
		response.Error(c, response.CodeConflict, "commission already distributed for this deal")
	case errors.Is(err, service.ErrPaymentStatusInvalid):
		response.Error(c, response.CodeConflict, "payment is not in a valid state for this action")
	case errors.Is(err, service.ErrDealStageInvalid):
		response.Error(c, response.CodeConflict, "deal stage does not allow this transition")
	case errors.Is(err, service.ErrDealNotEligible):
		response.BadRequest(c, "deal is not eligible for commission")
	case errors.Is(err, service.ErrGrossAmountInvalid):
		response.BadRequest(c, "gross amount must be positive")
	case errors.Is(err, service.ErrParentInvalid):
		response.BadRequest(c, "parent partner invalid")
	case errors.Is(err, service.ErrPartnerLevelLimit):
		response.BadRequest(c, "partner level limit reached")
	case errors.Is(err, service.ErrReferralInvalid):
		response.BadRequest(c, "referral input invalid")
	default:
		RespondError(c, response.CodeInternal, "internal error", err)
	}
}
