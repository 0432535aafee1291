package main

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hyperion-sim/hyperion/blueprint"
	"github.com/hyperion-sim/hyperion/transport"
	"github.com/hyperion-sim/hyperion/world"
)

// compileRequest is the wire-level shape of a blueprint submission (§4.2
// input). JSON field names are the snake_case the distilled spec.md §4.2
// uses; conversion to blueprint.ShipBlueprint's Go-native id/role types
// happens here, outside the core.
type compileRequest struct {
	ClassID string              `json:"class_id"`
	TeamID  string              `json:"team_id"`
	Players map[string][]string `json:"players"`      // player uuid -> roles
	Ready   []string            `json:"ready_players"` // player uuids
	Modules []struct {
		SlotType  string `json:"slot_type"`
		VariantID string `json:"variant_id"`
		WeaponID  string `json:"weapon_id"`
	} `json:"modules"`
}

// newCompileHandler adapts HTTP POST /ships into one
// blueprint.Compiler.Compile call, returning either the spawned ship id
// or the structured CompileReport (§4.2 "On failure... no partial state
// is committed").
func newCompileHandler(compiler *blueprint.Compiler, logger zerolog.Logger) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(rw, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req compileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(rw, "malformed blueprint", http.StatusBadRequest)
			return
		}

		bp := blueprint.ShipBlueprint{
			ClassID:      req.ClassID,
			TeamID:       req.TeamID,
			Players:      make(map[world.PlayerID][]world.Role, len(req.Players)),
			ReadyPlayers: make(map[world.PlayerID]bool, len(req.Ready)),
		}
		for idStr, roles := range req.Players {
			pid, ok := parsePlayerUUID(idStr)
			if !ok {
				http.Error(rw, "malformed player id: "+idStr, http.StatusBadRequest)
				return
			}
			out := make([]world.Role, len(roles))
			for i, role := range roles {
				out[i] = world.Role(role)
			}
			bp.Players[pid] = out
		}
		for _, idStr := range req.Ready {
			pid, ok := parsePlayerUUID(idStr)
			if !ok {
				http.Error(rw, "malformed player id: "+idStr, http.StatusBadRequest)
				return
			}
			bp.ReadyPlayers[pid] = true
		}
		for _, m := range req.Modules {
			bp.Modules = append(bp.Modules, blueprint.ModuleRequest{
				SlotType: m.SlotType, VariantID: m.VariantID, WeaponID: m.WeaponID,
			})
		}

		shipID, report := compiler.Compile(bp)
		if !report.OK() {
			logger.Warn().Int("errors", len(report.Errors)).Msg("blueprint rejected")
			rw.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(rw).Encode(report)
			return
		}

		rw.WriteHeader(http.StatusCreated)
		json.NewEncoder(rw).Encode(map[string]string{"ship_id": shipID.String()})
	}
}

// newWebSocketHandler binds an inbound connection to an already-spawned
// ship looked up by its ?ship_id= query parameter (the login/matchmaking
// step that decides which connection maps to which ship is part of the
// HTTP surface spec.md §1 excludes from the core; this is the minimal
// lookup the transport gateway needs).
func newWebSocketHandler(w *world.State, gateway *transport.Gateway) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		idStr := r.URL.Query().Get("ship_id")
		shipID, ok := parseShipUUID(idStr)
		if !ok {
			http.Error(rw, "missing or malformed ship_id", http.StatusBadRequest)
			return
		}
		if _, exists := w.Get(shipID); !exists {
			http.Error(rw, "unknown ship_id", http.StatusNotFound)
			return
		}
		gateway.HandleWebSocket(shipID)(rw, r)
	}
}
