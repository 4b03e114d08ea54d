package server

import (
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/nlewis84/weekly-summary/lib/github"
)

// RefreshParams is the cache bypass signal, set by UI-level refresh
// actions.
type RefreshParams struct {
	Bust bool `form:"bust"`
}

type WeekParams struct {
	RefreshParams
	Week string `uri:"week"`
}

func (s *server) initHistory(r *gin.Engine) {
	r.GET("/api/history", getP[RefreshParams](s.historyList))
	r.GET("/api/history/:week", getP[WeekParams](s.historyWeek))
	r.GET("/api/quota", get(s.quotaGet))
}

func (s *server) historyList(c *gin.Context, params *RefreshParams) (any, error) {
	weeks, err := s.store.ListWeeks(c.Request.Context(), params.Bust)
	if err != nil {
		return nil, err
	}

	return gin.H{"weeks": weeks}, nil
}

func (s *server) historyWeek(c *gin.Context, params *WeekParams) (any, error) {
	if !github.IsWeekKey(params.Week) {
		return nil, errors.Wrapf(errorBadRequest, "invalid week format (expected YYYY-MM-DD): %v", params.Week)
	}

	summary, err := s.store.FetchWeek(c.Request.Context(), params.Week, params.Bust)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, errors.Wrapf(errorNotFound, "summary %v", params.Week)
	}

	return gin.H{"payload": summary}, nil
}

func (s *server) quotaGet(c *gin.Context) (any, error) {
	return gin.H{"github": s.store.FetchQuota(c.Request.Context())}, nil
}
