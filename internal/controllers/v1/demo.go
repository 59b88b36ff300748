package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterDemoRoutes registers the read-only routes for Demos with
// the RouterGroup that is passed.
func RegisterDemoRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsDemoList)
		r.GET("", GetDemos)
	}

	// Demo with ID
	{
		r.OPTIONS("/:id", OptionsDemoDetail)
		r.GET("/:id", GetDemo)
	}
}

// RegisterDemoAdminRoutes registers the organizer-only routes for
// Demos with the RouterGroup that is passed.
func RegisterDemoAdminRoutes(r *gin.RouterGroup) {
	r.POST("", CreateDemos)
	r.PATCH("/:id", UpdateDemo)
	r.DELETE("/:id", DeleteDemo)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Demos
// @Success		204
// @Router			/v1/demos [options]
func OptionsDemoList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Demos
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/demos/{id} [options]
func OptionsDemoDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Demo{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create demos
// @Description	Creates new demos
// @Tags			Demos
// @Accept			json
// @Produce		json
// @Success		201		{object}	DemoCreateResponse
// @Failure		400		{object}	DemoCreateResponse
// @Failure		404		{object}	DemoCreateResponse
// @Failure		500		{object}	DemoCreateResponse
// @Param			demos	body		[]DemoEditable	true	"Demos"
// @Router			/v1/demos [post]
// @Security		AdminToken
func CreateDemos(c *gin.Context) {
	var editables []DemoEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := DemoCreateResponse{}

	for _, editable := range editables {
		demo := editable.model()

		err := models.DB.Create(&demo).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newDemo(c, demo)
		r.Data = append(r.Data, DemoResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List demos
// @Description	Returns a list of demos
// @Tags			Demos
// @Produce		json
// @Success		200	{object}	DemoListResponse
// @Failure		500	{object}	DemoListResponse
// @Router			/v1/demos [get]
// @Param			event	query	string	false	"Filter by event ID"
// @Param			name	query	string	false	"Filter by name"
// @Param			votable	query	bool	false	"Filter votable demos"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first Demo returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Demos to return. Defaults to 50."
func GetDemos(c *gin.Context) {
	var filter DemoQueryFilter

	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, DemoListResponse{Error: &e})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var demos []models.Demo

	// Demos keep their running order
	q := models.DB.
		Order("\"index\" ASC").
		Where(filter.model(), queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Demos and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&demos).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoListResponse{Error: &e})
		return
	}

	apiResources := make([]Demo, 0)
	for _, demo := range demos {
		apiResources = append(apiResources, newDemo(c, demo))
	}

	c.JSON(http.StatusOK, DemoListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get demo
// @Description	Returns a specific demo
// @Tags			Demos
// @Produce		json
// @Success		200	{object}	DemoResponse
// @Failure		400	{object}	DemoResponse
// @Failure		404	{object}	DemoResponse
// @Failure		500	{object}	DemoResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/demos/{id} [get]
func GetDemo(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	var demo models.Demo
	err = models.DB.First(&demo, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	apiResource := newDemo(c, demo)
	c.JSON(http.StatusOK, DemoResponse{Data: &apiResource})
}

// @Summary		Update demo
// @Description	Update an existing demo. Only values to be updated need to be specified.
// @Tags			Demos
// @Accept			json
// @Produce		json
// @Success		200		{object}	DemoResponse
// @Failure		400		{object}	DemoResponse
// @Failure		404		{object}	DemoResponse
// @Failure		500		{object}	DemoResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			demo	body		DemoEditable	true	"Demo"
// @Router			/v1/demos/{id} [patch]
// @Security		AdminToken
func UpdateDemo(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	var demo models.Demo
	err = models.DB.First(&demo, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, DemoEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	var data DemoEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	err = models.DB.Model(&demo).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DemoResponse{Error: &e})
		return
	}

	apiResource := newDemo(c, demo)
	c.JSON(http.StatusOK, DemoResponse{Data: &apiResource})
}

// @Summary		Delete demo
// @Description	Deletes a demo
// @Tags			Demos
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/demos/{id} [delete]
// @Security		AdminToken
func DeleteDemo(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var demo models.Demo
	err = models.DB.First(&demo, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&demo).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
