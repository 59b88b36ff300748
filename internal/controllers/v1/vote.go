package v1

import (
	"net/http"

	"github.com/demo-night/backend/internal/httputil"
	"github.com/demo-night/backend/internal/live"
	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// RegisterVoteRoutes registers the routes for Votes with the
// RouterGroup that is passed. Casting ballots is the attendee flow
// and needs no token.
func RegisterVoteRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsVoteList)
		r.GET("", GetVotes)
		r.POST("", UpsertVotes)
	}

	// Vote with ID
	{
		r.OPTIONS("/:id", OptionsVoteDetail)
		r.GET("/:id", GetVote)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Votes
// @Success		204
// @Router			/v1/votes [options]
func OptionsVoteList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Votes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/votes/{id} [options]
func OptionsVoteDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Vote{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Cast ballots
// @Description	Creates, updates or clears ballots. Each entry is processed independently, failures do not roll back other entries.
// @Tags			Votes
// @Accept			json
// @Produce		json
// @Success		201		{object}	VoteCreateResponse
// @Failure		400		{object}	VoteCreateResponse
// @Failure		404		{object}	VoteCreateResponse
// @Failure		500		{object}	VoteCreateResponse
// @Param			votes	body		[]VoteEditable	true	"Ballots"
// @Router			/v1/votes [post]
func UpsertVotes(c *gin.Context) {
	var editables []VoteEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteCreateResponse{Error: &e})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := VoteCreateResponse{}

	// Matches whose tallies changed in this batch
	touched := make(map[uuid.UUID]bool)

	for _, editable := range editables {
		vote, err := models.UpsertVote(models.DB, editable.request())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// A nil vote means the ballot was cleared
		if vote == nil {
			r.Data = append(r.Data, VoteResponse{})
			continue
		}

		if vote.MatchID != nil {
			touched[*vote.MatchID] = true
		}

		data := newVote(c, *vote)
		r.Data = append(r.Data, VoteResponse{Data: &data})
	}

	// Push the updated tallies to connected screens, once per match
	for id := range touched {
		broadcastMatchResults(id)
	}

	c.JSON(status, r)
}

// broadcastMatchResults publishes the live tally for a match. Failures
// only cost the push, the ballots are already stored.
func broadcastMatchResults(id uuid.UUID) {
	var match models.Match
	if err := models.DB.First(&match, id).Error; err != nil {
		return
	}

	result, err := match.Results(models.DB)
	if err != nil {
		return
	}

	live.Broadcast(live.MessageMatchResults, result)
}

// @Summary		List votes
// @Description	Returns a list of votes
// @Tags			Votes
// @Produce		json
// @Success		200	{object}	VoteListResponse
// @Failure		400	{object}	VoteListResponse
// @Failure		500	{object}	VoteListResponse
// @Router			/v1/votes [get]
// @Param			event		query	string	false	"Filter by event ID"
// @Param			attendee	query	string	false	"Filter by attendee ID"
// @Param			award		query	string	false	"Filter by award ID"
// @Param			demo		query	string	false	"Filter by demo ID"
// @Param			match		query	string	false	"Filter by match ID"
// @Param			type		query	string	false	"Filter by weight class"
// @Param			offset		query	uint	false	"The offset of the first Vote returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Votes to return. Defaults to 50."
func GetVotes(c *gin.Context) {
	var filter VoteQueryFilter

	if err := c.Bind(&filter); err != nil {
		e := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, VoteListResponse{Error: &e})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var votes []models.Vote

	q := models.DB.
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	// MatchID is a pointer column, the struct filter cannot express it
	if slices.Contains(setFields, "MatchID") {
		q = q.Where("match_id = ?", filter.MatchID.UUID)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Votes and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&votes).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
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
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get vote
// @Description	Returns a specific vote
// @Tags			Votes
// @Produce		json
// @Success		200	{object}	VoteResponse
// @Failure		400	{object}	VoteResponse
// @Failure		404	{object}	VoteResponse
// @Failure		500	{object}	VoteResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/votes/{id} [get]
func GetVote(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteResponse{Error: &e})
		return
	}

	var vote models.Vote
	err = models.DB.First(&vote, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), VoteResponse{Error: &e})
		return
	}

	apiResource := newVote(c, vote)
	c.JSON(http.StatusOK, VoteResponse{Data: &apiResource})
}
