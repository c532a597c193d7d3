package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListMatches")
	defer span.End()

	query := r.URL.Query()
	date, err := parseDateQuery(query.Get("date"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var leagueID int64
	if raw := strings.TrimSpace(query.Get("league_id")); raw != "" {
		leagueID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || leagueID < 0 {
			writeError(ctx, w, fmt.Errorf("%w: league_id must be a non-negative integer (0 means all leagues)", usecase.ErrInvalidInput))
			return
		}
	}

	board := h.aggregation.GetMatchBoard(ctx, date, leagueID)
	writeSuccess(ctx, w, http.StatusOK, matchBoardToDTO(board))
}

func (h *Handler) GetMatchNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetMatchNews")
	defer span.End()

	query := r.URL.Query()
	items, err := h.aggregation.GetMatchNews(ctx, query.Get("home"), query.Get("away"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchNewsDTO{News: newsToDTO(items)})
}

func (h *Handler) SearchNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SearchNews")
	defer span.End()

	items, err := h.aggregation.SearchNews(ctx, r.URL.Query().Get("q"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchNewsDTO{News: newsToDTO(items)})
}

func (h *Handler) GetDeepDive(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetDeepDive")
	defer span.End()

	var req deepDiveRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	date, err := parseDateQuery(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.aggregation.GetDeepDiveAnalysis(ctx, usecase.DeepDiveInput{
		MatchID:  r.PathValue("matchID"),
		HomeTeam: req.HomeTeam,
		AwayTeam: req.AwayTeam,
		Status:   req.Status,
		Odds:     req.Odds.toDomain(),
		Date:     date,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, deepDiveToDTO(result))
}

func (h *Handler) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GeneratePrediction")
	defer span.End()

	var req generatePredictionRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.aggregation.GeneratePrediction(ctx, prediction.Input{
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		Odds:       req.Odds.toDomain(),
		RecentNews: req.RecentNews,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, generatedPredictionDTO{Prediction: predictionOutputToDTO(out)})
}
