package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/roadfinder/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/roadfinder/pkg/http/usecases"
	"go.uber.org/zap"
)

type planningAPI struct {
	planningService PlanningService
	validate        *requestValidator
	log             *zap.Logger
}

func New(planningService PlanningService, log *zap.Logger) *planningAPI {
	return &planningAPI{
		planningService: planningService,
		validate:        newRequestValidator(),
		log:             log,
	}
}

func (api *planningAPI) Routes(group *helper.RouteGroup) {
	group.POST("/computePath", api.computePath)
	group.POST("/computePaths", api.computePaths)
	group.GET("/maps", api.listMaps)
}

// computePath
//
//	@Summary		shortest 8-connected path between two free cells
//	@Description	plans on a stored map (map_name) or an inline 0/1 grid. an unreachable end is answered with found=false.
//	@Tags			planner
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		planRequest	true	"plan request"
//	@Success		200		{object}	usecases.PlanResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		404		{object}	errorResponse
//	@Failure		500		{object}	errorResponse
//	@Router			/computePath [post]
func (api *planningAPI) computePath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	req, err := request.toPlanRequest()
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	resp, err := api.planningService.Plan(r.Context(), req)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// computePaths
//
//	@Summary		batch of plan requests
//	@Description	every request is answered in order with either data or error.
//	@Tags			planner
//	@Accept			application/json
//	@Produce		application/json
//	@Param			body	body		planBatchRequest	true	"plan requests"
//	@Success		200		{array}		batchItemResponse
//	@Failure		400		{object}	errorResponse
//	@Router			/computePaths [post]
func (api *planningAPI) computePaths(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planBatchRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	items := make([]batchItemResponse, len(request.Requests))
	reqs := make([]usecases.PlanRequest, 0, len(request.Requests))
	pos := make([]int, 0, len(request.Requests))
	for i := range request.Requests {
		req, err := request.Requests[i].toPlanRequest()
		if err != nil {
			items[i].Error = errorBodyOf(err)
			continue
		}
		reqs = append(reqs, req)
		pos = append(pos, i)
	}

	results := api.planningService.PlanBatch(r.Context(), reqs)
	for j, res := range results {
		if res.Err != nil {
			items[pos[j]].Error = errorBodyOf(res.Err)
			continue
		}
		resp := res.Response
		items[pos[j]].Data = &resp
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": items}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

// listMaps
//
//	@Summary	stored maps
//	@Tags		planner
//	@Produce	application/json
//	@Success	200	{array}	usecases.MapInfo
//	@Router		/maps [get]
func (api *planningAPI) listMaps(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": api.planningService.Maps()}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
