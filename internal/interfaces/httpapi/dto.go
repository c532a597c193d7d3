package httpapi

import (
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/domain/news"
	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

type threeWayDTO struct {
	Home *float64 `json:"home" validate:"omitempty,gt=1"`
	Draw *float64 `json:"draw" validate:"omitempty,gt=1"`
	Away *float64 `json:"away" validate:"omitempty,gt=1"`
}

func (d *threeWayDTO) toDomain() *odds.ThreeWay {
	if d == nil || (d.Home == nil && d.Draw == nil && d.Away == nil) {
		return nil
	}
	return &odds.ThreeWay{Home: d.Home, Draw: d.Draw, Away: d.Away}
}

func threeWayToDTO(prices *odds.ThreeWay) *threeWayDTO {
	if prices == nil {
		return nil
	}
	return &threeWayDTO{Home: prices.Home, Draw: prices.Draw, Away: prices.Away}
}

type deepDiveRequest struct {
	HomeTeam string       `json:"home_team" validate:"max=120"`
	AwayTeam string       `json:"away_team" validate:"max=120"`
	Status   string       `json:"status" validate:"max=64"`
	Odds     *threeWayDTO `json:"odds,omitempty"`
	Date     string       `json:"date,omitempty"`
}

type generatePredictionRequest struct {
	HomeTeam   string       `json:"home_team" validate:"required,max=120"`
	AwayTeam   string       `json:"away_team" validate:"required,max=120"`
	Odds       *threeWayDTO `json:"odds,omitempty"`
	RecentNews []string     `json:"recent_news,omitempty" validate:"max=10,dive,max=1000"`
}

type addFavoriteRequest struct {
	MatchID string `json:"match_id" validate:"required,max=64"`
}

type scoreDTO struct {
	Home int `json:"home" validate:"gte=0"`
	Away int `json:"away" validate:"gte=0"`
}

type predictionDTO struct {
	Winner         string   `json:"winner" validate:"required,max=120"`
	PredictedScore scoreDTO `json:"predicted_score"`
	Confidence     string   `json:"confidence" validate:"required,oneof=low medium high"`
	Reasoning      string   `json:"reasoning" validate:"max=4000"`
	Warnings       []string `json:"warnings" validate:"max=20,dive,max=500"`
}

func (d predictionDTO) toDomain() prediction.Output {
	return prediction.Output{
		Winner:         d.Winner,
		PredictedScore: prediction.Score{Home: d.PredictedScore.Home, Away: d.PredictedScore.Away},
		Confidence:     prediction.Confidence(d.Confidence),
		Reasoning:      d.Reasoning,
		Warnings:       d.Warnings,
	}
}

func predictionOutputToDTO(out *prediction.Output) *predictionDTO {
	if out == nil {
		return nil
	}
	warnings := out.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return &predictionDTO{
		Winner:         out.Winner,
		PredictedScore: scoreDTO{Home: out.PredictedScore.Home, Away: out.PredictedScore.Away},
		Confidence:     string(out.Confidence),
		Reasoning:      out.Reasoning,
		Warnings:       warnings,
	}
}

type savePredictionRequest struct {
	MatchID    string        `json:"match_id" validate:"required,max=64"`
	HomeTeam   string        `json:"home_team" validate:"max=120"`
	AwayTeam   string        `json:"away_team" validate:"max=120"`
	MatchDate  string        `json:"match_date,omitempty"`
	Prediction predictionDTO `json:"prediction"`
}

type trackViewRequest struct {
	MatchID   string `json:"match_id" validate:"required,max=64"`
	HomeTeam  string `json:"home_team" validate:"max=120"`
	AwayTeam  string `json:"away_team" validate:"max=120"`
	League    string `json:"league" validate:"max=120"`
	MatchDate string `json:"match_date,omitempty"`
}

type statusDTO struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type teamDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

type leagueDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	LogoURL    string `json:"logo_url"`
	Federation string `json:"federation,omitempty"`
}

type goalsDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

type outcomeDTO struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type marketDTO struct {
	Key      string       `json:"key"`
	Outcomes []outcomeDTO `json:"outcomes"`
}

type bookmakerDTO struct {
	Key        string      `json:"key"`
	Title      string      `json:"title"`
	LastUpdate *string     `json:"last_update"`
	Markets    []marketDTO `json:"markets"`
}

type oddsDTO struct {
	ID           string         `json:"id"`
	SportKey     string         `json:"sport_key"`
	SportTitle   string         `json:"sport_title"`
	CommenceTime string         `json:"commence_time"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	Bookmakers   []bookmakerDTO `json:"bookmakers"`
}

type matchDTO struct {
	ID        int64        `json:"id"`
	KickoffAt string       `json:"kickoff_at"`
	Status    statusDTO    `json:"status"`
	Home      teamDTO      `json:"home"`
	Away      teamDTO      `json:"away"`
	League    leagueDTO    `json:"league"`
	Goals     goalsDTO     `json:"goals"`
	Odds      *oddsDTO     `json:"odds"`
	Prices    *threeWayDTO `json:"prices"`
}

type leagueOptionDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type matchBoardDTO struct {
	Matches []matchDTO        `json:"matches"`
	Leagues []leagueOptionDTO `json:"leagues"`
}

type newsItemDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         string  `json:"url"`
	Source      string  `json:"source"`
	PublishedAt *string `json:"published_at"`
}

type matchNewsDTO struct {
	News []newsItemDTO `json:"news"`
}

type deepDiveDTO struct {
	News       []newsItemDTO  `json:"news"`
	Prediction *predictionDTO `json:"prediction"`
}

type generatedPredictionDTO struct {
	Prediction *predictionDTO `json:"prediction"`
}

type favoriteDTO struct {
	ID        string `json:"id"`
	MatchID   string `json:"match_id"`
	CreatedAt string `json:"created_at"`
}

type savedPredictionDTO struct {
	ID         string         `json:"id"`
	MatchID    string         `json:"match_id"`
	HomeTeam   string         `json:"home_team"`
	AwayTeam   string         `json:"away_team"`
	MatchDate  *string        `json:"match_date"`
	Prediction *predictionDTO `json:"prediction"`
	CreatedAt  string         `json:"created_at"`
}

type historyEntryDTO struct {
	ID        string  `json:"id"`
	MatchID   string  `json:"match_id"`
	HomeTeam  string  `json:"home_team"`
	AwayTeam  string  `json:"away_team"`
	League    string  `json:"league"`
	MatchDate *string `json:"match_date"`
	ViewedAt  string  `json:"viewed_at"`
}

type timelineItemDTO struct {
	Kind       string              `json:"kind"`
	At         string              `json:"at"`
	View       *historyEntryDTO    `json:"view,omitempty"`
	Prediction *savedPredictionDTO `json:"prediction,omitempty"`
}

type timelineGroupDTO struct {
	Label string            `json:"label"`
	Items []timelineItemDTO `json:"items"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	value := formatTime(*t)
	return &value
}

func matchBoardToDTO(board usecase.MatchBoard) matchBoardDTO {
	leagues := make([]leagueOptionDTO, 0, len(board.Leagues))
	for _, item := range board.Leagues {
		leagues = append(leagues, leagueOptionDTO{ID: item.ID, Name: item.Name, Country: item.Country})
	}
	return matchBoardDTO{
		Matches: matchViewsToDTO(board.Matches),
		Leagues: leagues,
	}
}

func matchViewsToDTO(views []usecase.MatchView) []matchDTO {
	out := make([]matchDTO, 0, len(views))
	for _, view := range views {
		out = append(out, matchViewToDTO(view))
	}
	return out
}

func matchViewToDTO(view usecase.MatchView) matchDTO {
	f := view.Fixture
	return matchDTO{
		ID:        f.ID,
		KickoffAt: formatTime(f.KickoffAt),
		Status:    statusDTO{Long: f.Status.Long, Short: f.Status.Short},
		Home:      teamToDTO(f.Home),
		Away:      teamToDTO(f.Away),
		League: leagueDTO{
			ID:         f.League.ID,
			Name:       f.League.Name,
			Country:    f.League.Country,
			LogoURL:    f.League.LogoURL,
			Federation: view.LeagueInfo.Federation,
		},
		Goals:  goalsDTO{Home: f.HomeGoals, Away: f.AwayGoals},
		Odds:   oddsToDTO(view.Odds),
		Prices: threeWayToDTO(view.Prices),
	}
}

func teamToDTO(t fixture.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, LogoURL: t.LogoURL}
}

func oddsToDTO(item *odds.Odds) *oddsDTO {
	if item == nil {
		return nil
	}
	bookmakers := make([]bookmakerDTO, 0, len(item.Bookmakers))
	for _, b := range item.Bookmakers {
		markets := make([]marketDTO, 0, len(b.Markets))
		for _, m := range b.Markets {
			outcomes := make([]outcomeDTO, 0, len(m.Outcomes))
			for _, o := range m.Outcomes {
				outcomes = append(outcomes, outcomeDTO{Name: o.Name, Price: o.Price})
			}
			markets = append(markets, marketDTO{Key: m.Key, Outcomes: outcomes})
		}
		bookmakers = append(bookmakers, bookmakerDTO{
			Key:        b.Key,
			Title:      b.Title,
			LastUpdate: formatOptionalTime(b.LastUpdate),
			Markets:    markets,
		})
	}
	return &oddsDTO{
		ID:           item.ID,
		SportKey:     item.SportKey,
		SportTitle:   item.SportTitle,
		CommenceTime: formatTime(item.CommenceTime),
		HomeTeam:     item.HomeTeam,
		AwayTeam:     item.AwayTeam,
		Bookmakers:   bookmakers,
	}
}

// newsToDTO keeps nil (match not resolved) distinct from empty.
func newsToDTO(items []news.Item) []newsItemDTO {
	if items == nil {
		return nil
	}
	out := make([]newsItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, newsItemDTO{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source,
			PublishedAt: formatOptionalTime(item.PublishedAt),
		})
	}
	return out
}

func deepDiveToDTO(result usecase.DeepDive) deepDiveDTO {
	return deepDiveDTO{
		News:       newsToDTO(result.News),
		Prediction: predictionOutputToDTO(result.Prediction),
	}
}

func favoriteToDTO(item favorite.Favorite) favoriteDTO {
	return favoriteDTO{ID: item.ID, MatchID: item.MatchID, CreatedAt: formatTime(item.CreatedAt)}
}

func savedPredictionToDTO(item prediction.Saved) savedPredictionDTO {
	return savedPredictionDTO{
		ID:         item.ID,
		MatchID:    item.MatchID,
		HomeTeam:   item.HomeTeam,
		AwayTeam:   item.AwayTeam,
		MatchDate:  formatOptionalTime(item.MatchDate),
		Prediction: predictionOutputToDTO(&item.Output),
		CreatedAt:  formatTime(item.CreatedAt),
	}
}

func historyEntryToDTO(item history.Entry) historyEntryDTO {
	return historyEntryDTO{
		ID:        item.ID,
		MatchID:   item.MatchID,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		League:    item.League,
		MatchDate: formatOptionalTime(item.MatchDate),
		ViewedAt:  formatTime(item.ViewedAt),
	}
}

func timelineToDTO(groups []usecase.TimelineGroup) []timelineGroupDTO {
	out := make([]timelineGroupDTO, 0, len(groups))
	for _, group := range groups {
		items := make([]timelineItemDTO, 0, len(group.Items))
		for _, item := range group.Items {
			dto := timelineItemDTO{Kind: item.Kind, At: formatTime(item.At)}
			if item.View != nil {
				view := historyEntryToDTO(*item.View)
				dto.View = &view
			}
			if item.Prediction != nil {
				saved := savedPredictionToDTO(*item.Prediction)
				dto.Prediction = &saved
			}
			items = append(items, dto)
		}
		out = append(out, timelineGroupDTO{Label: group.Label, Items: items})
	}
	return out
}
