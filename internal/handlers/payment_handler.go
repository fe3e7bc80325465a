package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/petspa-booking/internal/dto"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	uc "github.com/BruksfildServices01/petspa-booking/internal/usecase/payment"
)

type PaymentHandler struct {
	create       *uc.CreatePayment
	changeMethod *uc.ChangeMethod
	list         *uc.ListPayments
	gatewayURL   *uc.CreateGatewayURL
	callback     *uc.GatewayCallback
}

func NewPaymentHandler(d uc.Deps) *PaymentHandler {
	return &PaymentHandler{
		create:       uc.NewCreatePayment(d),
		changeMethod: uc.NewChangeMethod(d),
		list:         uc.NewListPayments(d),
		gatewayURL:   uc.NewCreateGatewayURL(d),
		callback:     uc.NewGatewayCallback(d),
	}
}

// --------- Requests ---------

type CreatePaymentRequest struct {
	Amount        int64  `json:"amount" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

type ChangeMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	TransactionID string `json:"transaction_id"`
}

type GatewayURLRequest struct {
	BankCode string `json:"bank_code"`
}

// --------- Handlers ---------

func (h *PaymentHandler) Create(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req CreatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	rec, err := h.create.Execute(c.Request.Context(), uc.CreatePaymentInput{
		AppointmentID: id,
		Amount:        req.Amount,
		Method:        req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Payment recorded.", gin.H{
		"payment":     dto.Payment(rec.Payment),
		"appointment": dto.Appointment(rec.Appointment),
	})
}

func (h *PaymentHandler) ChangeMethod(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req ChangeMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.changeMethod.Execute(c.Request.Context(), id, req.PaymentMethod, req.TransactionID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Payment method updated.", dto.Appointment(ap))
}

func (h *PaymentHandler) List(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	payments, err := h.list.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.Payments(payments))
}

func (h *PaymentHandler) GatewayURL(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	// the body is optional
	var req GatewayURLRequest
	_ = c.ShouldBindJSON(&req)

	out, err := h.gatewayURL.Execute(c.Request.Context(), id, c.ClientIP(), req.BankCode)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Payment link created.", gin.H{
		"payment_url": out.URL,
		"txn_ref":     out.TxnRef,
		"expires_at":  out.ExpiresAt,
		"payment":     dto.Payment(out.Payment),
	})
}

// Callback serves both the gateway's server-to-server notification and
// the browser return. Parameters may arrive in the query or a form body.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		httperr.BadRequest(c, "invalid_request", "Callback parameters could not be read.")
		return
	}

	res, err := h.callback.Execute(c.Request.Context(), vnpay.Params(c.Request.Form))
	if err != nil {
		respondCallbackError(c, err)
		return
	}

	if !res.Success {
		c.JSON(http.StatusOK, httpresp.Envelope{
			Success: false,
			Message: "Payment was not completed at the gateway.",
			Data:    res,
		})
		return
	}

	message := "Payment confirmed."
	if res.Duplicate {
		message = "Payment already recorded."
	}
	httpresp.Message(c, message, res)
}

// respondCallbackError keeps a recording failure apart from a rejected
// callback: the customer has paid, so it must surface as a server error.
func respondCallbackError(c *gin.Context, err error) {
	if errors.Is(err, uc.ErrRecordingFailed) {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("route", c.FullPath()).
			Msg("gateway payment not recorded")
		httperr.Internal(c, "payment_recording_failed", uc.ErrRecordingFailed.Error())
		return
	}
	httperr.Respond(c, err)
}
