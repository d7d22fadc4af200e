package optimize

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"tripmate/osrm"
	"tripmate/utils"
)

var defaultService = NewService(osrm.NewClient())

// OptimizeDay handles POST /api/optimize/day.
func OptimizeDay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	resp, err := defaultService.Optimize(r.Context(), req)
	if err != nil {
		log.Printf("optimize failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Optimization failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
