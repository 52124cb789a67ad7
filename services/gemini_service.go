package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Analysis failures the capture flow can route on. The caller owns retry
// policy; Estimate never retries on its own.
var (
	ErrAnalysisRequestFailed = errors.New("analysis request failed")
	ErrAnalysisMalformed     = errors.New("analysis response malformed")
	ErrAnalysisTimeout       = errors.New("analysis request timed out")
)

// NutritionEstimate is the unscaled, standard-portion result from the
// classification model. It is transient: it either becomes a meal record
// after portion scaling or is discarded.
type NutritionEstimate struct {
	FoodName      string  `json:"foodName"`
	Calories      float64 `json:"calories"`      // kcal
	Carbohydrates float64 `json:"carbohydrates"` // grams
	Protein       float64 `json:"protein"`       // grams
	Fat           float64 `json:"fat"`           // grams
	Sugar         float64 `json:"sugar"`         // grams
}

const analysisPrompt = "Identify this food and provide estimated nutritional values for a standard portion. Focus on accuracy for a diabetic patient."

type GeminiService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGeminiService() *GeminiService {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response shapes for the generateContent endpoint. The schema
// forces a structured JSON reply instead of free text.
type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiRequest struct {
	Contents []struct {
		Parts []geminiPart `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string          `json:"responseMimeType"`
		ResponseSchema   json.RawMessage `json:"responseSchema"`
	} `json:"generationConfig"`
}

var nutritionSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"foodName":      {"type": "STRING"},
		"calories":      {"type": "NUMBER", "description": "Total kcal"},
		"carbohydrates": {"type": "NUMBER", "description": "Grams of carbs"},
		"protein":       {"type": "NUMBER", "description": "Grams of protein"},
		"fat":           {"type": "NUMBER", "description": "Grams of fat"},
		"sugar":         {"type": "NUMBER", "description": "Grams of sugar"}
	},
	"required": ["foodName", "calories", "carbohydrates", "protein", "fat", "sugar"]
}`)

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// estimatePayload uses pointers so absent fields are distinguishable
// from zero values during schema validation.
type estimatePayload struct {
	FoodName      *string  `json:"foodName"`
	Calories      *float64 `json:"calories"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Sugar         *float64 `json:"sugar"`
}

// Estimate sends one encoded JPEG to the model and returns the validated
// standard-portion estimate. imageBytes must be non-empty.
func (s *GeminiService) Estimate(ctx context.Context, imageBytes []byte) (*NutritionEstimate, error) {
	if len(imageBytes) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrAnalysisRequestFailed)
	}

	var reqBody geminiRequest
	reqBody.Contents = append(reqBody.Contents, struct {
		Parts []geminiPart `json:"parts"`
	}{Parts: []geminiPart{
		{InlineData: &geminiInlineData{
			MimeType: "image/jpeg",
			Data:     base64.StdEncoding.EncodeToString(imageBytes),
		}},
		{Text: analysisPrompt},
	}})
	reqBody.GenerationConfig.ResponseMimeType = "application/json"
	reqBody.GenerationConfig.ResponseSchema = nutritionSchema

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrAnalysisRequestFailed, err)
	}

	u := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrAnalysisRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrAnalysisTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrAnalysisRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrAnalysisRequestFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: model API error %d: %s", ErrAnalysisRequestFailed, resp.StatusCode, string(body))
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("%w: parse envelope: %v", ErrAnalysisMalformed, err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates returned", ErrAnalysisMalformed)
	}

	return parseEstimate(gr.Candidates[0].Content.Parts[0].Text)
}

func parseEstimate(text string) (*NutritionEstimate, error) {
	var p estimatePayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("%w: parse payload: %v", ErrAnalysisMalformed, err)
	}

	for name, f := range map[string]*float64{
		"calories":      p.Calories,
		"carbohydrates": p.Carbohydrates,
		"protein":       p.Protein,
		"fat":           p.Fat,
		"sugar":         p.Sugar,
	} {
		if f == nil {
			return nil, fmt.Errorf("%w: missing field %q", ErrAnalysisMalformed, name)
		}
		if *f < 0 {
			return nil, fmt.Errorf("%w: negative %q", ErrAnalysisMalformed, name)
		}
	}
	if p.FoodName == nil || *p.FoodName == "" {
		return nil, fmt.Errorf("%w: missing food name", ErrAnalysisMalformed)
	}

	return &NutritionEstimate{
		FoodName:      *p.FoodName,
		Calories:      *p.Calories,
		Carbohydrates: *p.Carbohydrates,
		Protein:       *p.Protein,
		Fat:           *p.Fat,
		Sugar:         *p.Sugar,
	}, nil
}
