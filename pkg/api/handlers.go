// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	cerrors "github.com/NVIDIA/semcmp/pkg/errors"
	"github.com/NVIDIA/semcmp/pkg/serializer"
	"github.com/NVIDIA/semcmp/pkg/server"
	"github.com/NVIDIA/semcmp/pkg/session"
	"github.com/NVIDIA/semcmp/pkg/version"
)

// Handler serves the direct and staged comparison surfaces.
type Handler struct {
	store *session.Store
}

// NewHandler returns a Handler backed by store.
func NewHandler(store *session.Store) *Handler {
	return &Handler{store: store}
}

// Routes returns the handlers keyed by ServeMux pattern.
func (h *Handler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"POST /v1/compare":                                 h.HandleCompare,
		"POST /v1/sessions":                                h.HandleCreateSession,
		"GET /v1/sessions/{id}":                            h.HandleGetSession,
		"DELETE /v1/sessions/{id}":                         h.HandleDeleteSession,
		"PUT /v1/sessions/{id}/{slot}":                     h.HandleStage,
		"GET /v1/sessions/{id}/predicates":                 h.HandlePredicates,
		"GET /v1/sessions/{id}/{slot}/identifiers":         h.HandleIdentifiers,
		"GET /v1/sessions/{id}/{slot}/identifiers/{index}": h.HandleIdentifier,
	}
}

// HandleCompare compares two operands without staging them.
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	coreA, preA, err := req.A.Resolve()
	if err != nil {
		writeError(w, r, err, "operand", "a")
		return
	}
	coreB, preB, err := req.B.Resolve()
	if err != nil {
		writeError(w, r, err, "operand", "b")
		return
	}

	o := version.CompareParts(coreA, preA, coreB, preB)
	comparisonsTotal.WithLabelValues(surfaceDirect, o.String()).Inc()

	serializer.RespondJSON(w, http.StatusOK, newPredicates(o))
}

// HandleCreateSession registers a new empty staging session.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, sess, err := h.store.Create()
	if err != nil {
		writeError(w, r, classify(err, "cannot create session"))
		return
	}
	sessionsActive.Set(float64(h.store.Len()))

	w.Header().Set("Location", "/v1/sessions/"+id)
	serializer.RespondJSON(w, http.StatusCreated, describe(id, sess))
}

// HandleGetSession reports the state and staged operands of a session.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := h.getSession(id)
	if err != nil {
		writeError(w, r, classify(err, "session not found"), "id", id)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, describe(id, sess))
}

// HandleDeleteSession discards a session.
func (h *Handler) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.Delete(id) {
		writeError(w, r, classify(fmt.Errorf("%w: %s", session.ErrSessionNotFound, id), "session not found"), "id", id)
		return
	}
	sessionsActive.Set(float64(h.store.Len()))
	w.WriteHeader(http.StatusNoContent)
}

// HandleStage overwrites slot a or b of a session.
func (h *Handler) HandleStage(w http.ResponseWriter, r *http.Request) {
	sess, slot, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req OperandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	core, pre, err := req.Resolve()
	if err != nil {
		writeError(w, r, err, "slot", string(slot))
		return
	}

	sess.Set(slot, core, pre)
	slog.Debug("operand staged", "id", r.PathValue("id"), "slot", slot, "state", sess.State())
	w.WriteHeader(http.StatusNoContent)
}

// HandlePredicates answers the five predicates for the staged pair.
func (h *Handler) HandlePredicates(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := h.getSession(id)
	if err != nil {
		writeError(w, r, classify(err, "session not found"), "id", id)
		return
	}

	o, err := sess.Compare()
	if err != nil {
		writeError(w, r, classify(err, "both versions must be staged"), "state", string(sess.State()))
		return
	}
	comparisonsTotal.WithLabelValues(surfaceStaged, o.String()).Inc()

	serializer.RespondJSON(w, http.StatusOK, newPredicates(o))
}

// HandleIdentifiers lists the identifiers staged in a slot.
func (h *Handler) HandleIdentifiers(w http.ResponseWriter, r *http.Request) {
	sess, slot, ok := h.lookup(w, r)
	if !ok {
		return
	}

	ids := sess.Identifiers(slot)
	serializer.RespondJSON(w, http.StatusOK, IdentifiersResponse{
		Slot:        slot,
		Count:       len(ids),
		Identifiers: ids,
	})
}

// HandleIdentifier returns one staged identifier by position.
func (h *Handler) HandleIdentifier(w http.ResponseWriter, r *http.Request) {
	sess, slot, ok := h.lookup(w, r)
	if !ok {
		return
	}

	raw := r.PathValue("index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, r, cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest,
			"index must be an integer", err, map[string]any{"index": raw}))
		return
	}

	id, err := sess.Identifier(slot, i)
	if err != nil {
		writeError(w, r, classify(err, "identifier index out of range"),
			"slot", string(slot), "index", i, "count", sess.NumIdentifiers(slot))
		return
	}

	serializer.RespondJSON(w, http.StatusOK, IdentifierResponse{
		Slot:       slot,
		Index:      i,
		Identifier: id,
	})
}

// lookup resolves the {id} and {slot} path values, writing the error
// response itself when either is unknown.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, session.Slot, bool) {
	slot, err := session.ParseSlot(r.PathValue("slot"))
	if err != nil {
		writeError(w, r, classify(err, "unknown slot"), "slot", r.PathValue("slot"))
		return nil, "", false
	}

	id := r.PathValue("id")
	sess, err := h.getSession(id)
	if err != nil {
		writeError(w, r, classify(err, "session not found"), "id", id)
		return nil, "", false
	}
	return sess, slot, true
}

// getSession fetches a session. Get drops expired entries on the way, so a
// miss refreshes the active gauge.
func (h *Handler) getSession(id string) (*session.Session, error) {
	sess, err := h.store.Get(id)
	if errors.Is(err, session.ErrSessionNotFound) {
		sessionsActive.Set(float64(h.store.Len()))
	}
	return sess, err
}

func describe(id string, sess *session.Session) SessionResponse {
	resp := SessionResponse{ID: id, State: sess.State()}
	if v, ok := sess.Staged(session.SlotA); ok {
		resp.A = &StagedOperand{Version: v.String(), Identifiers: v.Prerelease.Values()}
	}
	if v, ok := sess.Staged(session.SlotB); ok {
		resp.B = &StagedOperand{Version: v.String(), Identifiers: v.Prerelease.Values()}
	}
	return resp
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return cerrors.WrapWithContext(cerrors.ErrCodeInvalidRequest, "request body too large", err,
				map[string]any{"limit": maxErr.Limit})
		}
		return cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid JSON request body", err)
	}
	return nil
}

// writeError renders err with optional key/value details.
func writeError(w http.ResponseWriter, r *http.Request, err error, kv ...any) {
	var details map[string]any
	if len(kv) > 1 {
		details = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				details[k] = kv[i+1]
			}
		}
	}
	server.WriteErrorFromErr(w, r, err, "internal error", details)
}
