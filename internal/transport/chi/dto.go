package chi

import (
	"github.com/kailas-cloud/recdex/internal/domain/batch"
	"github.com/kailas-cloud/recdex/internal/domain/item"
	"github.com/kailas-cloud/recdex/internal/usecase/recommend"
	"github.com/kailas-cloud/recdex/internal/usecase/users"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeItemNotFound      ErrorCode = "item_not_found"
	CodeUserNotFound      ErrorCode = "user_not_found"
	CodeUserAlreadyExists ErrorCode = "user_already_exists"
	CodeInvalidDimension  ErrorCode = "invalid_dimension"
	CodeNoRecommendation  ErrorCode = "no_recommendation"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// AddItemRequest is the body of POST /items.
type AddItemRequest struct {
	Title    string    `json:"title"    validate:"required,max=512"`
	Year     int       `json:"year"     validate:"min=0,max=9999"`
	Features []float64 `json:"features" validate:"required,min=1"`
}

// BatchAddItemsRequest is the body of POST /items/batch.
type BatchAddItemsRequest struct {
	Items []AddItemRequest `json:"items" validate:"required,min=1,dive"`
}

// RatingRequest references a catalog item in POST /users.
type RatingRequest struct {
	Title  string  `json:"title"  validate:"required"`
	Year   int     `json:"year"   validate:"min=0,max=9999"`
	Rating float64 `json:"rating"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name    string          `json:"name"    validate:"required,max=256,excludesall=/"`
	Ratings []RatingRequest `json:"ratings" validate:"omitempty,dive"`
}

// RateRequest is the body of POST /users/{name}/ratings.
type RateRequest struct {
	Title    string    `json:"title"    validate:"required,max=512"`
	Year     int       `json:"year"     validate:"min=0,max=9999"`
	Features []float64 `json:"features" validate:"required,min=1"`
	Rating   float64   `json:"rating"`
}

// ItemKey is the wire form of item.Key.
type ItemKey struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// ItemResponse is one catalog entry.
type ItemResponse struct {
	ItemKey
	Features []float64 `json:"features"`
}

// BatchItemResult is the outcome for one item of a batch add.
type BatchItemResult struct {
	ItemKey
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchResponse is the body of a batch add response.
type BatchResponse struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []BatchItemResult `json:"items"`
}

// RatedItem is one user rating.
type RatedItem struct {
	ItemKey
	Rating float64 `json:"rating"`
}

// UserResponse is a user profile snapshot.
type UserResponse struct {
	Name    string      `json:"name"`
	Ratings []RatedItem `json:"ratings"`
}

// ScoredItem is one ranked candidate.
type ScoredItem struct {
	ItemKey
	Score float64 `json:"score"`
}

// RecommendationResponse is a single pick.
type RecommendationResponse struct {
	Algorithm string  `json:"algorithm"`
	Item      ItemKey `json:"item"`
}

// RankingResponse is a ranked candidate list.
type RankingResponse struct {
	Algorithm string       `json:"algorithm"`
	Items     []ScoredItem `json:"items"`
}

// Neighbor is one k-NN neighbor in a prediction.
type Neighbor struct {
	ItemKey
	Similarity   float64 `json:"similarity"`
	Rating       float64 `json:"rating"`
	Contribution float64 `json:"contribution"`
}

// PredictionResponse is a predicted rating with its explanation.
type PredictionResponse struct {
	Item       ItemKey    `json:"item"`
	K          int        `json:"k"`
	Prediction float64    `json:"prediction"`
	Neighbors  []Neighbor `json:"neighbors"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Items      int    `json:"items"`
	Dimensions int    `json:"dimensions"`
	Users      int    `json:"users"`
}

func keyToDTO(k item.Key) ItemKey {
	return ItemKey{Title: k.Title, Year: k.Year}
}

func itemsFromDTO(in []AddItemRequest) []users.ItemInput {
	out := make([]users.ItemInput, len(in))
	for i, r := range in {
		out[i] = users.ItemInput{Title: r.Title, Year: r.Year, Features: r.Features}
	}
	return out
}

func batchToDTO(results []batch.Result) BatchResponse {
	resp := BatchResponse{Items: make([]BatchItemResult, len(results))}
	for i, r := range results {
		out := BatchItemResult{ItemKey: keyToDTO(r.Key()), Status: string(r.Status())}
		if r.Err() != nil {
			resp.Failed++
			out.Error = r.Err().Error()
		} else {
			resp.Succeeded++
		}
		resp.Items[i] = out
	}
	return resp
}

func userToDTO(v users.View) UserResponse {
	out := UserResponse{Name: v.Name, Ratings: make([]RatedItem, len(v.Ratings))}
	for i, r := range v.Ratings {
		out.Ratings[i] = RatedItem{ItemKey: keyToDTO(r.Key), Rating: r.Rating}
	}
	return out
}

func ratingsFromDTO(in []RatingRequest) []users.RatingInput {
	out := make([]users.RatingInput, len(in))
	for i, r := range in {
		out[i] = users.RatingInput{Title: r.Title, Year: r.Year, Rating: r.Rating}
	}
	return out
}

func scoredToDTO(in []recommend.Scored) []ScoredItem {
	out := make([]ScoredItem, len(in))
	for i, s := range in {
		out[i] = ScoredItem{ItemKey: keyToDTO(s.Key), Score: s.Score}
	}
	return out
}

func explanationToDTO(e recommend.Explanation) PredictionResponse {
	out := PredictionResponse{
		Item:       keyToDTO(e.Target),
		K:          e.K,
		Prediction: e.Prediction,
		Neighbors:  make([]Neighbor, len(e.Neighbors)),
	}
	for i, n := range e.Neighbors {
		out.Neighbors[i] = Neighbor{
			ItemKey:      keyToDTO(n.Key),
			Similarity:   n.Similarity,
			Rating:       n.Rating,
			Contribution: n.Contribution,
		}
	}
	return out
}
