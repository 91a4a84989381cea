package public

import (
	"strconv"

	"github.com/kitlane/internal/http/response"

	"github.com/gin-gonic/gin"
)

// FootballStandings 获取联赛积分榜（代理上游数据）
func (h *Handler) FootballStandings(c *gin.Context) {
	data, err := h.FootballService.CompetitionStandings(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithMappedError(c, err, footballErrorRules, response.CodeInternal, "error.football_upstream")
		return
	}
	response.Success(c, data)
}

// FootballMatches 获取联赛赛程
func (h *Handler) FootballMatches(c *gin.Context) {
	data, err := h.FootballService.CompetitionMatches(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondWithMappedError(c, err, footballErrorRules, response.CodeInternal, "error.football_upstream")
		return
	}
	response.Success(c, data)
}

// FootballTeam 获取球队信息
func (h *Handler) FootballTeam(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	data, err := h.FootballService.Team(c.Request.Context(), uint(id))
	if err != nil {
		respondWithMappedError(c, err, footballErrorRules, response.CodeInternal, "error.football_upstream")
		return
	}
	response.Success(c, data)
}
