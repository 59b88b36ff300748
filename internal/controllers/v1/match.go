package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/live"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterMatchRoutes registers the read-only routes for Matches with
// the RouterGroup that is passed.
func RegisterMatchRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMatchList)
		r.GET("", GetMatches)
	}

	// Match with ID
	{
		r.OPTIONS("/:id", OptionsMatchDetail)
		r.GET("/:id", GetMatch)
		r.GET("/:id/votes", GetMatchVotes)
		r.GET("/:id/results", GetMatchResults)
	}
}

// RegisterMatchAdminRoutes registers the organizer-only routes for
// Matches with the RouterGroup that is passed.
func RegisterMatchAdminRoutes(r *gin.RouterGroup) {
	r.POST("", CreateMatches)
	r.POST("/:id/start", StartMatch)
	r.POST("/:id/close", CloseMatch)
	r.DELETE("/:id", DeleteMatch)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Matches
// @Success		204
// @Router			/v1/matches [options]
func OptionsMatchList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Matches
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id} [options]
func OptionsMatchDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Match{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create matches
// @Description	Creates new matches. Matches are created inactive and must be started explicitly.
// @Tags			Matches
// @Accept			json
// @Produce		json
// @Success		201		{object}	MatchCreateResponse
// @Failure		400		{object}	MatchCreateResponse
// @Failure		404		{object}	MatchCreateResponse
// @Failure		500		{object}	MatchCreateResponse
// @Param			matches	body		[]MatchEditable	true	"Matches"
// @Router			/v1/matches [post]
// @Security		AdminToken
func CreateMatches(c *gin.Context) {
	var editables []MatchEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := MatchCreateResponse{}

	for _, editable := range editables {
		match := editable.model()

		err := models.DB.Create(&match).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newMatch(c, match)
		r.Data = append(r.Data, MatchResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		List matches
// @Description	Returns a list of matches
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchListResponse
// @Failure		400	{object}	MatchListResponse
// @Failure		500	{object}	MatchListResponse
// @Router			/v1/matches [get]
// @Param			event	query	string	false	"Filter by event ID"
// @Param			active	query	bool	false	"Filter active matches"
// @Param			offset	query	uint	false	"The offset of the first Match returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of Matches to return. Defaults to 50."
func GetMatches(c *gin.Context) {
	var filter MatchQueryFilter

	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, MatchListResponse{Error: &e})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var matches []models.Match

	q := models.DB.
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Matches and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&matches).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchListResponse{Error: &e})
		return
	}

	apiResources := make([]Match, 0)
	for _, match := range matches {
		apiResources = append(apiResources, newMatch(c, match))
	}

	c.JSON(http.StatusOK, MatchListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get match
// @Description	Returns a specific match
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchResponse
// @Failure		400	{object}	MatchResponse
// @Failure		404	{object}	MatchResponse
// @Failure		500	{object}	MatchResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id} [get]
func GetMatch(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	var match models.Match
	err = models.DB.First(&match, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	apiResource := newMatch(c, match)
	c.JSON(http.StatusOK, MatchResponse{Data: &apiResource})
}

// @Summary		Get match votes
// @Description	Returns the ballots cast for a match
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	VoteListResponse
// @Failure		400	{object}	VoteListResponse
// @Failure		404	{object}	VoteListResponse
// @Failure		500	{object}	VoteListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id}/votes [get]
func GetMatchVotes(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteListResponse{Error: &e})
		return
	}

	var match models.Match
	err = models.DB.First(&match, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteListResponse{Error: &e})
		return
	}

	votes, err := match.Votes(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteListResponse{Error: &e})
		return
	}

	apiResources := make([]Vote, 0)
	for _, vote := range votes {
		apiResources = append(apiResources, newVote(c, vote))
	}

	c.JSON(http.StatusOK, VoteListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count: len(apiResources),
			Total: int64(len(apiResources)),
			Limit: -1,
		},
	})
}

// @Summary		Get match results
// @Description	Returns the live tally for a match. After voting closes the tally equals the persisted result.
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchResultResponse
// @Failure		400	{object}	MatchResultResponse
// @Failure		404	{object}	MatchResultResponse
// @Failure		500	{object}	MatchResultResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id}/results [get]
func GetMatchResults(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResultResponse{Error: &e})
		return
	}

	var match models.Match
	err = models.DB.First(&match, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResultResponse{Error: &e})
		return
	}

	result, err := match.Results(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResultResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, MatchResultResponse{Data: &result})
}

// @Summary		Start match
// @Description	Opens voting for a match. Only one match per event can be active, and a match can only be started once.
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchResponse
// @Failure		400	{object}	MatchResponse
// @Failure		404	{object}	MatchResponse
// @Failure		500	{object}	MatchResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id}/start [post]
// @Security		AdminToken
func StartMatch(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	match, err := models.StartMatch(models.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	apiResource := newMatch(c, match)
	live.Broadcast(live.MessageMatchStarted, apiResource)

	c.JSON(http.StatusOK, MatchResponse{Data: &apiResource})
}

// @Summary		Close match voting
// @Description	Closes voting for a match and persists the winner computed from the final tally.
// @Tags			Matches
// @Produce		json
// @Success		200	{object}	MatchResponse
// @Failure		400	{object}	MatchResponse
// @Failure		404	{object}	MatchResponse
// @Failure		500	{object}	MatchResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id}/close [post]
// @Security		AdminToken
func CloseMatch(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	match, err := models.CloseMatchVoting(models.DB, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MatchResponse{Error: &e})
		return
	}

	apiResource := newMatch(c, match)
	live.Broadcast(live.MessageMatchClosed, apiResource)

	c.JSON(http.StatusOK, MatchResponse{Data: &apiResource})
}

// @Summary		Delete match
// @Description	Deletes a match and all ballots cast for it
// @Tags			Matches
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/matches/{id} [delete]
// @Security		AdminToken
func DeleteMatch(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteMatch(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
