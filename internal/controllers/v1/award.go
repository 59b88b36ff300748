package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAwardRoutes registers the read-only routes for Awards with
// the RouterGroup that is passed.
func RegisterAwardRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAwardList)
		r.GET("", GetAwards)
	}

	// Award with ID
	{
		r.OPTIONS("/:id", OptionsAwardDetail)
		r.GET("/:id", GetAward)
	}
}

// RegisterAwardAdminRoutes registers the organizer-only routes for
// Awards with the RouterGroup that is passed.
func RegisterAwardAdminRoutes(r *gin.RouterGroup) {
	r.POST("", CreateAwards)
	r.PATCH("/:id", UpdateAward)
	r.DELETE("/:id", DeleteAward)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Awards
// @Success		204
// @Router			/v1/awards [options]
func OptionsAwardList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Awards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/awards/{id} [options]
func OptionsAwardDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Award{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create awards
// @Description	Creates new awards
// @Tags			Awards
// @Accept			json
// @Produce		json
// @Success		201		{object}	AwardCreateResponse
// @Failure		400		{object}	AwardCreateResponse
// @Failure		404		{object}	AwardCreateResponse
// @Failure		500		{object}	AwardCreateResponse
// @Param			awards	body		[]AwardEditable	true	"Awards"
// @Router			/v1/awards [post]
// @Security		AdminToken
func CreateAwards(c *gin.Context) {
	var editables []AwardEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := AwardCreateResponse{}

	for _, editable := range editables {
		award := editable.model()

		err := models.DB.Create(&award).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newAward(c, award)
		r.Data = append(r.Data, AwardResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List awards
// @Description	Returns a list of awards
// @Tags			Awards
// @Produce		json
// @Success		200	{object}	AwardListResponse
// @Failure		500	{object}	AwardListResponse
// @Router			/v1/awards [get]
// @Param			event		query	string	false	"Filter by event ID"
// @Param			name		query	string	false	"Filter by name"
// @Param			votingMode	query	string	false	"Filter by voting mode"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first Award returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Awards to return. Defaults to 50."
func GetAwards(c *gin.Context) {
	var filter AwardQueryFilter

	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, AwardListResponse{Error: &e})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var awards []models.Award

	q := models.DB.
		Order("\"index\" ASC").
		Where(filter.model(), queryFields...)

	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Awards and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&awards).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardListResponse{Error: &e})
		return
	}

	apiResources := make([]Award, 0)
	for _, award := range awards {
		apiResources = append(apiResources, newAward(c, award))
	}

	c.JSON(http.StatusOK, AwardListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get award
// @Description	Returns a specific award
// @Tags			Awards
// @Produce		json
// @Success		200	{object}	AwardResponse
// @Failure		400	{object}	AwardResponse
// @Failure		404	{object}	AwardResponse
// @Failure		500	{object}	AwardResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/awards/{id} [get]
func GetAward(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	var award models.Award
	err = models.DB.First(&award, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	apiResource := newAward(c, award)
	c.JSON(http.StatusOK, AwardResponse{Data: &apiResource})
}

// @Summary		Update award
// @Description	Update an existing award. Only values to be updated need to be specified.
// @Tags			Awards
// @Accept			json
// @Produce		json
// @Success		200		{object}	AwardResponse
// @Failure		400		{object}	AwardResponse
// @Failure		404		{object}	AwardResponse
// @Failure		500		{object}	AwardResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			award	body		AwardEditable	true	"Award"
// @Router			/v1/awards/{id} [patch]
// @Security		AdminToken
func UpdateAward(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	var award models.Award
	err = models.DB.First(&award, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AwardEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	var data AwardEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	// gorm update hooks run on the fetched model, not the payload, so
	// the voting mode is checked here
	if slices.Contains(updateFields, any("VotingMode")) && !data.VotingMode.Valid() {
		e := models.ErrVotingModeInvalid.Error()
		c.JSON(http.StatusBadRequest, AwardResponse{Error: &e})
		return
	}

	err = models.DB.Model(&award).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AwardResponse{Error: &e})
		return
	}

	apiResource := newAward(c, award)
	c.JSON(http.StatusOK, AwardResponse{Data: &apiResource})
}

// @Summary		Delete award
// @Description	Deletes an award
// @Tags			Awards
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/awards/{id} [delete]
// @Security		AdminToken
func DeleteAward(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var award models.Award
	err = models.DB.First(&award, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&award).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
