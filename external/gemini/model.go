package gemini

import (
	"strings"

	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
	Temperature      float64        `json:"temperature"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates" validate:"required,min=1"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

// predictionPayload mirrors the response schema. Pointers distinguish missing
// fields from zero values so a partial object is rejected.
type predictionPayload struct {
	Winner         *string       `json:"winner" validate:"required"`
	PredictedScore *scorePayload `json:"predictedScore" validate:"required"`
	Confidence     *string       `json:"confidence" validate:"required,oneof=low medium high"`
	Reasoning      *string       `json:"reasoning" validate:"required"`
	Warnings       *[]string     `json:"warnings" validate:"required"`
}

type scorePayload struct {
	Home *int `json:"home" validate:"required,gte=0"`
	Away *int `json:"away" validate:"required,gte=0"`
}

func (p predictionPayload) toDomain() prediction.Output {
	warnings := make([]string, 0, len(*p.Warnings))
	warnings = append(warnings, *p.Warnings...)

	return prediction.Output{
		Winner: strings.TrimSpace(*p.Winner),
		PredictedScore: prediction.Score{
			Home: *p.PredictedScore.Home,
			Away: *p.PredictedScore.Away,
		},
		Confidence: prediction.Confidence(*p.Confidence),
		Reasoning:  strings.TrimSpace(*p.Reasoning),
		Warnings:   warnings,
	}
}

// responseSchema constrains the model output to the prediction shape.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"winner": map[string]any{"type": "STRING"},
		"predictedScore": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"home": map[string]any{"type": "INTEGER"},
				"away": map[string]any{"type": "INTEGER"},
			},
			"required": []string{"home", "away"},
		},
		"confidence": map[string]any{"type": "STRING", "enum": []string{"low", "medium", "high"}},
		"reasoning":  map[string]any{"type": "STRING"},
		"warnings":   map[string]any{"type": "ARRAY", "items": map[string]any{"type": "STRING"}},
	},
	"required": []string{"winner", "predictedScore", "confidence", "reasoning", "warnings"},
}
