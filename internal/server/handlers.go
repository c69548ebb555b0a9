// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/recipe-recommender/internal/display"
	"github.com/pdiddy/recipe-recommender/internal/features"
	"github.com/pdiddy/recipe-recommender/internal/recommend"
	"github.com/pdiddy/recipe-recommender/pkg/types"
)

// RecommendRequest is the JSON body of POST /api/v1/recommendations.
type RecommendRequest struct {
	// Nutrients maps each nutrient column name to a category label.
	Nutrients map[string]string `json:"nutrients" binding:"required"`

	// SampleSize overrides the configured sample size when positive.
	SampleSize int `json:"sample_size"`
}

// RecommendResponse is the JSON result of a recommendation.
type RecommendResponse struct {
	Cluster int            `json:"cluster"`
	Recipes []display.View `json:"recipes"`
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) categories(c *gin.Context) {
	nutrients := make([]string, len(types.FeatureOrder))
	for i, n := range types.FeatureOrder {
		nutrients[i] = string(n)
	}
	c.JSON(http.StatusOK, gin.H{
		"nutrients":     nutrients,
		"categories":    types.CategoryLabels(),
		"table_version": types.CategoryTableVersion,
	})
}

func (s *Server) recommendJSON(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	res, err := s.recommend(req.Nutrients, req.SampleSize)
	if err != nil {
		status, msg := s.errorStatus(err)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(http.StatusOK, RecommendResponse{
		Cluster: res.Cluster,
		Recipes: display.Views(res.Cluster, res.Recipes),
	})
}

// formPage is the data rendered by the page template.
type formPage struct {
	Nutrients  []formField
	Categories []string
	Result     *RecommendResponse
	Error      string
}

type formField struct {
	Name     string
	Label    string
	Selected string
}

// fieldLabels are the human labels of the form selects.
var fieldLabels = map[types.Nutrient]string{
	types.Calories:            "Calories",
	types.FatContent:          "Fat Content",
	types.CholesterolContent:  "Cholesterol Content",
	types.SodiumContent:       "Sodium Content",
	types.CarbohydrateContent: "Carbohydrate Content",
	types.FiberContent:        "Fiber Content",
	types.SugarContent:        "Sugar Content",
	types.ProteinContent:      "Protein Content",
}

func newFormPage(selected map[string]string) formPage {
	labels := types.CategoryLabels()
	page := formPage{Categories: labels}
	for _, n := range types.FeatureOrder {
		sel := selected[string(n)]
		if sel == "" {
			sel = labels[0]
		}
		page.Nutrients = append(page.Nutrients, formField{
			Name:     string(n),
			Label:    fieldLabels[n],
			Selected: sel,
		})
	}
	return page
}

func (s *Server) form(c *gin.Context) {
	c.HTML(http.StatusOK, "page", newFormPage(nil))
}

func (s *Server) submit(c *gin.Context) {
	raw := make(map[string]string, types.NumNutrients)
	for _, n := range types.FeatureOrder {
		if v, ok := c.GetPostForm(string(n)); ok {
			raw[string(n)] = v
		}
	}

	page := newFormPage(raw)
	res, err := s.recommend(raw, 0)
	if err != nil {
		status, msg := s.errorStatus(err)
		page.Error = msg
		c.HTML(status, "page", page)
		return
	}
	page.Result = &RecommendResponse{
		Cluster: res.Cluster,
		Recipes: display.Views(res.Cluster, res.Recipes),
	}
	c.HTML(http.StatusOK, "page", page)
}

// recommend runs one request and records its outcome.
func (s *Server) recommend(raw map[string]string, sampleSize int) (recommend.Result, error) {
	q, err := features.ParseQuery(raw)
	if err != nil {
		s.metrics.observeRecommendation(outcomeInvalidInput, 0)
		return recommend.Result{}, err
	}

	res, err := s.rec.Recommend(q, sampleSize)
	switch {
	case err == nil:
		s.metrics.observeRecommendation(outcomeOK, res.Cluster)
	case recommend.IsInputError(err):
		s.metrics.observeRecommendation(outcomeInvalidInput, 0)
	case recommend.IsRequestError(err):
		s.metrics.observeRecommendation(outcomeNoMatch, 0)
		s.logger.Warn().Err(err).Msg("cannot recommend")
	default:
		s.metrics.observeRecommendation(outcomeError, 0)
		s.logger.Error().Err(err).Msg("recommendation failed")
	}
	return res, err
}

// errorStatus maps a request error to an HTTP status and user-facing text.
func (s *Server) errorStatus(err error) (int, string) {
	switch {
	case recommend.IsInputError(err):
		return http.StatusBadRequest, err.Error()
	case recommend.IsRequestError(err):
		return http.StatusUnprocessableEntity, fmt.Sprintf("cannot recommend for this combination: %v", err)
	}
	return http.StatusInternalServerError, "internal error"
}
