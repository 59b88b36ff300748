package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/live"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/exp/slices"
)

// RegisterEventRoutes registers the read-only routes for Events with
// the RouterGroup that is passed.
func RegisterEventRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsEventList)
		r.GET("", GetEvents)
	}

	// The currently live event
	{
		r.OPTIONS("/current", OptionsEventCurrent)
		r.GET("/current", GetCurrentEvent)
	}

	// Event with ID
	{
		r.OPTIONS("/:id", OptionsEventDetail)
		r.GET("/:id", GetEvent)
		r.GET("/:id/qr", GetEventQR)
	}
}

// RegisterEventAdminRoutes registers the organizer-only routes for
// Events with the RouterGroup that is passed.
func RegisterEventAdminRoutes(r *gin.RouterGroup) {
	r.POST("", CreateEvents)
	r.PUT("/current", SetCurrentEvent)
	r.PATCH("/:id", UpdateEvent)
	r.DELETE("/:id", DeleteEvent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events [options]
func OptionsEventList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events/current [options]
func OptionsEventCurrent(c *gin.Context) {
	c.Header("allow", "GET, PUT")
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [options]
func OptionsEventDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Event{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create events
// @Description	Creates new events
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		201		{object}	EventCreateResponse
// @Failure		400		{object}	EventCreateResponse
// @Failure		500		{object}	EventCreateResponse
// @Param			events	body		[]EventEditable	true	"Events"
// @Router			/v1/events [post]
// @Security		AdminToken
func CreateEvents(c *gin.Context) {
	var editables []EventEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := EventCreateResponse{}

	for _, editable := range editables {
		event := editable.model()

		err := models.DB.Create(&event).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newEvent(c, event)
		r.Data = append(r.Data, EventResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List events
// @Description	Returns a list of events
// @Tags			Events
// @Produce		json
// @Success		200	{object}	EventListResponse
// @Failure		500	{object}	EventListResponse
// @Router			/v1/events [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			phase	query	string	false	"Filter by phase"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Event returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Events to return. Defaults to 50."
func GetEvents(c *gin.Context) {
	var filter EventQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var events []models.Event

	// Events are sorted by date, newest first
	q := models.DB.
		Order("date DESC").
		Where(filter.model(), queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Events and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&events).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventListResponse{Error: &e})
		return
	}

	apiResources := make([]Event, 0)
	for _, event := range events {
		apiResources = append(apiResources, newEvent(c, event))
	}

	c.JSON(http.StatusOK, EventListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get event
// @Description	Returns a specific event
// @Tags			Events
// @Produce		json
// @Success		200	{object}	EventResponse
// @Failure		400	{object}	EventResponse
// @Failure		404	{object}	EventResponse
// @Failure		500	{object}	EventResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [get]
func GetEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	var event models.Event
	err = models.DB.First(&event, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	apiResource := newEvent(c, event)
	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Get current event
// @Description	Returns the currently live event
// @Tags			Events
// @Produce		json
// @Success		200	{object}	EventResponse
// @Failure		404	{object}	EventResponse
// @Failure		500	{object}	EventResponse
// @Router			/v1/events/current [get]
func GetCurrentEvent(c *gin.Context) {
	event, err := models.CurrentEvent(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	apiResource := newEvent(c, event)
	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Set current event
// @Description	Marks an event as the currently live one
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		200		{object}	EventResponse
// @Failure		400		{object}	EventResponse
// @Failure		404		{object}	EventResponse
// @Failure		500		{object}	EventResponse
// @Param			event	body		URIID	true	"ID of the event"
// @Router			/v1/events/current [put]
// @Security		AdminToken
func SetCurrentEvent(c *gin.Context) {
	var body struct {
		ID string `json:"id" binding:"required"`
	}

	err := httputil.BindData(c, &body)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	var uri URIID
	err = uri.ID.UnmarshalParam(body.ID)
	if err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, EventResponse{Error: &e})
		return
	}

	err = models.SetCurrentEvent(models.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	event, err := models.CurrentEvent(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	apiResource := newEvent(c, event)
	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Event check-in QR code
// @Description	Returns a PNG QR code encoding the event's public URL
// @Tags			Events
// @Produce		png
// @Success		200	{file}		file
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			size	query	int		false	"Edge length in pixels, between 64 and 1024. Defaults to 256."
// @Router			/v1/events/{id}/qr [get]
func GetEventQR(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var params struct {
		Size int `form:"size"`
	}
	_ = c.Bind(&params)

	if params.Size == 0 {
		params.Size = 256
	}

	if params.Size < 64 || params.Size > 1024 {
		c.JSON(http.StatusBadRequest, httpError{Error: errQRSize.Error()})
		return
	}

	var event models.Event
	err = models.DB.First(&event, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Fall back to the event's API URL when no public page is set
	target := event.URL
	if target == "" {
		target = newEvent(c, event).Links.Self
	}

	png, err := qrcode.Encode(target, qrcode.Medium, params.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// @Summary		Update event
// @Description	Update an existing event. Only values to be updated need to be specified.
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		200		{object}	EventResponse
// @Failure		400		{object}	EventResponse
// @Failure		404		{object}	EventResponse
// @Failure		500		{object}	EventResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			event	body		EventEditable	true	"Event"
// @Router			/v1/events/{id} [patch]
// @Security		AdminToken
func UpdateEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	var event models.Event
	err = models.DB.First(&event, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, EventEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	var data EventEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	// gorm update hooks run on the fetched model, not the payload, so
	// the phase is checked here
	if slices.Contains(updateFields, any("Phase")) && !data.Phase.Valid() {
		e := models.ErrEventPhaseInvalid.Error()
		c.JSON(http.StatusBadRequest, EventResponse{Error: &e})
		return
	}

	phaseChanged := slices.Contains(updateFields, any("Phase")) && data.Phase != event.Phase

	err = models.DB.Model(&event).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventResponse{Error: &e})
		return
	}

	apiResource := newEvent(c, event)

	// Connected voting screens follow the phase
	if phaseChanged {
		live.Broadcast(live.MessageEventPhase, apiResource)
	}

	c.JSON(http.StatusOK, EventResponse{Data: &apiResource})
}

// @Summary		Delete event
// @Description	Deletes an event
// @Tags			Events
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/events/{id} [delete]
// @Security		AdminToken
func DeleteEvent(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var event models.Event
	err = models.DB.First(&event, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&event).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
