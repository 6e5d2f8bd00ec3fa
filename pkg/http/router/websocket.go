package router

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// handleWebsocket
//
//	@Summary		websocket planning
//	@Description	upgrade to a websocket, every text frame is a computePath request body answered by one text frame
//	@Tags			planner
//	@Router			/ws [get]
func (api *API) handleWebsocket(ctx context.Context) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		api.hub.Serve(ctx, w, r)
	}
}
