// README: Transfer wizard handlers; one endpoint per wizard operation.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"airporter/internal/modules/matching"
	"airporter/internal/modules/wizard"
	"airporter/internal/types"
)

type TransferHandler struct {
	wizard *wizard.Service
}

func NewTransferHandler(svc *wizard.Service) *TransferHandler {
	return &TransferHandler{wizard: svc}
}

type itineraryReq struct {
	FromAddress    string `json:"from_address"`
	ToAddress      string `json:"to_address"`
	PickupDate     string `json:"pickup_date"`
	PickupTime     string `json:"pickup_time"`
	PassengerCount int    `json:"passenger_count"`
	VehicleType    string `json:"vehicle_type"`
}

type selectDriverReq struct {
	DriverID string `json:"driver_id"`
}

type vehicleTypeReq struct {
	VehicleType string `json:"vehicle_type"`
}

type contactReq struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type paymentReq struct {
	Method string `json:"method"`
}

func (h *TransferHandler) Begin(c *gin.Context) {
	sess, err := h.wizard.Begin(c.Request.Context())
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(sess))
}

func (h *TransferHandler) Get(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) UpdateItinerary(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	err := h.wizard.UpdateItinerary(c.Request.Context(), sess, wizard.ItineraryUpdate{
		FromAddress:    req.FromAddress,
		ToAddress:      req.ToAddress,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
		PassengerCount: req.PassengerCount,
		VehicleType:    req.VehicleType,
	})
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) Next(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	if err := h.wizard.Next(c.Request.Context(), sess); err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) Back(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	if err := h.wizard.Back(c.Request.Context(), sess); err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) SelectDriver(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	var req selectDriverReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DriverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "driver_id is required"})
		return
	}
	if err := h.wizard.SelectDriver(c.Request.Context(), sess, types.ID(req.DriverID)); err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) ChangeVehicleType(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	var req vehicleTypeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.VehicleType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "vehicle_type is required"})
		return
	}
	if err := h.wizard.ChangeVehicleType(c.Request.Context(), sess, req.VehicleType); err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) SetContact(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	err := h.wizard.SetContact(c.Request.Context(), sess, wizard.ContactInfo{Name: req.Name, Phone: req.Phone})
	if err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) SetPaymentMethod(c *gin.Context) {
	sess, ok := h.resume(c)
	if !ok {
		return
	}
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Method == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method is required"})
		return
	}
	if err := h.wizard.SetPaymentMethod(c.Request.Context(), sess, req.Method); err != nil {
		writeWizardError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *TransferHandler) resume(c *gin.Context) (*wizard.Session, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return nil, false
	}
	sess, err := h.wizard.Resume(c.Request.Context(), types.ID(id))
	if err != nil {
		writeWizardError(c, err)
		return nil, false
	}
	return sess, true
}

func writeWizardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrIncompleteItinerary),
		errors.Is(err, wizard.ErrNoDriverSelected),
		errors.Is(err, wizard.ErrIncompleteContact),
		errors.Is(err, wizard.ErrUnknownDriver):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrWrongStep), errors.Is(err, wizard.ErrTerminal):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

type candidateView struct {
	DriverID            string  `json:"driver_id"`
	Name                string  `json:"name"`
	Phone               string  `json:"phone"`
	PhotoURL            string  `json:"photo_url,omitempty"`
	VehicleType         string  `json:"vehicle_type"`
	VehicleDescription  string  `json:"vehicle_description"`
	LicensePlate        string  `json:"license_plate"`
	SimulatedDistanceKm float64 `json:"distance_km"`
	SimulatedEtaMin     int     `json:"eta_min"`
}

func sessionView(sess *wizard.Session) gin.H {
	candidates := make([]candidateView, 0, len(sess.Candidates))
	for _, cand := range sess.Candidates {
		candidates = append(candidates, toCandidateView(cand))
	}

	view := gin.H{
		"session_id":   sess.ID,
		"step":         sess.Step,
		"request":      sess.Request,
		"distance_km":  sess.Route.DistanceKm,
		"duration_min": sess.Route.DurationMin,
		"candidates":   candidates,
		// An empty candidate list is retryable, not an error.
		"can_retry_search": sess.Step == wizard.StepDriver && len(candidates) == 0,
		"quote":            gin.H{"amount": sess.Quote.Amount, "currency": sess.Quote.Currency},
	}
	if sess.Selected != nil {
		v := toCandidateView(*sess.Selected)
		view["selected_driver"] = v
	}
	if sess.BookingID != "" {
		view["booking_id"] = sess.BookingID
	}
	return view
}

func toCandidateView(cand matching.Candidate) candidateView {
	return candidateView{
		DriverID:            string(cand.ID),
		Name:                cand.Name,
		Phone:               cand.Phone,
		PhotoURL:            cand.PhotoURL,
		VehicleType:         cand.VehicleType,
		VehicleDescription:  cand.VehicleDescription,
		LicensePlate:        cand.LicensePlate,
		SimulatedDistanceKm: cand.SimulatedDistanceKm,
		SimulatedEtaMin:     cand.SimulatedEtaMin,
	}
}
