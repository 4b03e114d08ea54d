package server

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var yearRe = regexp.MustCompile(`^\d{4}$`)

type YearParams struct {
	RefreshParams
	Year string `uri:"year"`
}

func (s *server) initCharts(r *gin.Engine) {
	r.GET("/api/charts", getP[RefreshParams](s.chartsData))
	r.GET("/api/annual/:year", getP[YearParams](s.chartsAnnual))
	r.GET("/api/years", getP[RefreshParams](s.chartsYears))
}

func (s *server) chartsData(c *gin.Context, params *RefreshParams) (any, error) {
	return s.charts.Data(c.Request.Context(), params.Bust)
}

func (s *server) chartsAnnual(c *gin.Context, params *YearParams) (any, error) {
	if !yearRe.MatchString(params.Year) {
		return nil, errors.Wrapf(errorBadRequest, "invalid year: %v", params.Year)
	}

	return s.charts.Annual(c.Request.Context(), params.Year, params.Bust)
}

func (s *server) chartsYears(c *gin.Context, params *RefreshParams) (any, error) {
	years, err := s.charts.Years(c.Request.Context(), params.Bust)
	if err != nil {
		return nil, err
	}

	return gin.H{"years": years}, nil
}
