package httpapi

import (
	"net/http"

	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListFavorites")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	items, err := h.favorites.List(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorites failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]favoriteDTO, 0, len(items))
	for _, item := range items {
		out = append(out, favoriteToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AddFavorite")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req addFavoriteRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.favorites.Add(ctx, principal.UserID, req.MatchID)
	if err != nil {
		h.logger.WarnContext(ctx, "add favorite failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, favoriteToDTO(item))
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RemoveFavorite")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.favorites.Remove(ctx, principal.UserID, r.PathValue("matchID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}

func (h *Handler) ListFavoriteMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListFavoriteMatches")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDateQuery(r.URL.Query().Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.favorites.ListWithMatches(ctx, principal.UserID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list favorite matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchViewsToDTO(views))
}

func (h *Handler) ListSavedPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListSavedPredictions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	items, err := h.predictions.List(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list predictions failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]savedPredictionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, savedPredictionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) SavePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SavePrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req savePredictionRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchDate, err := parseOptionalTime(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.predictions.Save(ctx, usecase.SavePredictionInput{
		UserID:    principal.UserID,
		MatchID:   req.MatchID,
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		MatchDate: matchDate,
		Output:    req.Prediction.toDomain(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save prediction failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, savedPredictionToDTO(item))
}

func (h *Handler) DeleteSavedPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteSavedPrediction")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.predictions.Delete(ctx, principal.UserID, r.PathValue("predictionID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListHistory")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	items, err := h.history.List(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "list history failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]historyEntryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, historyEntryToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) TrackMatchView(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "TrackMatchView")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req trackViewRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	matchDate, err := parseOptionalTime(req.MatchDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.history.TrackView(ctx, principal.UserID, req.MatchID, history.Metadata{
		HomeTeam:  req.HomeTeam,
		AwayTeam:  req.AwayTeam,
		League:    req.League,
		MatchDate: matchDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "track match view failed", "user_id", principal.UserID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, historyEntryToDTO(entry))
}

func (h *Handler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "DeleteHistoryEntry")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.history.Delete(ctx, principal.UserID, r.PathValue("entryID")); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}

func (h *Handler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetTimeline")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	groups, err := h.timeline.Timeline(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "timeline failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, timelineToDTO(groups))
}
