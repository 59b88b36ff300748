package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAttendeeRoutes registers the open routes for Attendees with
// the RouterGroup that is passed. Creating an attendee is the check-in
// flow and needs no token.
func RegisterAttendeeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAttendeeList)
		r.GET("", GetAttendees)
		r.POST("", CreateAttendees)
	}

	// Attendee with ID
	{
		r.OPTIONS("/:id", OptionsAttendeeDetail)
		r.GET("/:id", GetAttendee)
	}
}

// RegisterAttendeeAdminRoutes registers the organizer-only routes for
// Attendees with the RouterGroup that is passed.
func RegisterAttendeeAdminRoutes(r *gin.RouterGroup) {
	r.PATCH("/:id", UpdateAttendee)
	r.DELETE("/:id", DeleteAttendee)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Attendees
// @Success		204
// @Router			/v1/attendees [options]
func OptionsAttendeeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Attendees
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendees/{id} [options]
func OptionsAttendeeDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Attendee{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Check in attendees
// @Description	Creates new attendees. An empty code is replaced with a generated access code.
// @Tags			Attendees
// @Accept			json
// @Produce		json
// @Success		201			{object}	AttendeeCreateResponse
// @Failure		400			{object}	AttendeeCreateResponse
// @Failure		500			{object}	AttendeeCreateResponse
// @Param			attendees	body		[]AttendeeEditable	true	"Attendees"
// @Router			/v1/attendees [post]
func CreateAttendees(c *gin.Context) {
	var editables []AttendeeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AttendeeCreateResponse{}

	for _, editable := range editables {
		attendee := editable.model()

		err := models.DB.Create(&attendee).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAttendee(c, attendee)
		r.Data = append(r.Data, AttendeeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List attendees
// @Description	Returns a list of attendees
// @Tags			Attendees
// @Produce		json
// @Success		200	{object}	AttendeeListResponse
// @Failure		404	{object}	AttendeeListResponse
// @Failure		500	{object}	AttendeeListResponse
// @Router			/v1/attendees [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			email	query	string	false	"Filter by email"
// @Param			code	query	string	false	"Look up by access code, exact match"
// @Param			type	query	string	false	"Filter by type"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Attendee returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Attendees to return. Defaults to 50."
func GetAttendees(c *gin.Context) {
	var filter AttendeeQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// A code lookup resolves to exactly the attendee holding the code
	if filter.Code != "" {
		attendee, err := models.AttendeeByCode(models.DB, filter.Code)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), AttendeeListResponse{Error: &e})
			return
		}

		apiResource := newAttendee(c, attendee)
		c.JSON(http.StatusOK, AttendeeListResponse{
			Data: []Attendee{apiResource},
			Pagination: &Pagination{
				Count: 1,
				Total: 1,
				Limit: 50,
			},
		})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var attendees []models.Attendee

	q := models.DB.
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Attendees and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&attendees).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeListResponse{Error: &e})
		return
	}

	apiResources := make([]Attendee, 0)
	for _, attendee := range attendees {
		apiResources = append(apiResources, newAttendee(c, attendee))
	}

	c.JSON(http.StatusOK, AttendeeListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get attendee
// @Description	Returns a specific attendee
// @Tags			Attendees
// @Produce		json
// @Success		200	{object}	AttendeeResponse
// @Failure		400	{object}	AttendeeResponse
// @Failure		404	{object}	AttendeeResponse
// @Failure		500	{object}	AttendeeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendees/{id} [get]
func GetAttendee(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	var attendee models.Attendee
	err = models.DB.First(&attendee, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	apiResource := newAttendee(c, attendee)
	c.JSON(http.StatusOK, AttendeeResponse{Data: &apiResource})
}

// @Summary		Update attendee
// @Description	Update an existing attendee. Only values to be updated need to be specified.
// @Tags			Attendees
// @Accept			json
// @Produce		json
// @Success		200			{object}	AttendeeResponse
// @Failure		400			{object}	AttendeeResponse
// @Failure		404			{object}	AttendeeResponse
// @Failure		500			{object}	AttendeeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			attendee	body		AttendeeEditable	true	"Attendee"
// @Router			/v1/attendees/{id} [patch]
// @Security		AdminToken
func UpdateAttendee(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	var attendee models.Attendee
	err = models.DB.First(&attendee, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AttendeeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	var data AttendeeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	// gorm update hooks run on the fetched model, not the payload, so
	// the type is checked here
	if slices.Contains(updateFields, any("Type")) && !data.Type.Valid() {
		e := models.ErrAttendeeTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, AttendeeResponse{Error: &e})
		return
	}

	err = models.DB.Model(&attendee).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AttendeeResponse{Error: &e})
		return
	}

	apiResource := newAttendee(c, attendee)
	c.JSON(http.StatusOK, AttendeeResponse{Data: &apiResource})
}

// @Summary		Delete attendee
// @Description	Deletes an attendee
// @Tags			Attendees
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/attendees/{id} [delete]
// @Security		AdminToken
func DeleteAttendee(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var attendee models.Attendee
	err = models.DB.First(&attendee, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&attendee).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
