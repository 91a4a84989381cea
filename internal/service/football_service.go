package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kitlane/internal/cache"
	"github.com/kitlane/internal/config"
	"github.com/kitlane/internal/constants"
	"github.com/kitlane/internal/logger"
)

// FootballService 足球数据代理服务，转发上游数据接口并做短时缓存，
// 供前台编辑内容（积分榜、赛程、球队资料）使用
type FootballService struct {
	baseURL  string
	apiToken string
	client   *http.Client
	cacheTTL time.Duration
}

// NewFootballService 创建足球数据代理服务
func NewFootballService(cfg config.FootballConfig) *FootballService {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FootballService{
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiToken: strings.TrimSpace(cfg.APIToken),
		client:   &http.Client{Timeout: timeout},
		cacheTTL: ttl,
	}
}

// CompetitionStandings 获取联赛积分榜
func (s *FootballService) CompetitionStandings(ctx context.Context, code string) (json.RawMessage, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrFootballNotFound
	}
	return s.fetch(ctx,
		fmt.Sprintf("%s:standings:%s", constants.FootballCachePrefix, code),
		fmt.Sprintf("/competitions/%s/standings", code),
	)
}

// CompetitionMatches 获取联赛赛程
func (s *FootballService) CompetitionMatches(ctx context.Context, code string) (json.RawMessage, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrFootballNotFound
	}
	return s.fetch(ctx,
		fmt.Sprintf("%s:matches:%s", constants.FootballCachePrefix, code),
		fmt.Sprintf("/competitions/%s/matches", code),
	)
}

// Team 获取球队资料
func (s *FootballService) Team(ctx context.Context, id uint) (json.RawMessage, error) {
	if id == 0 {
		return nil, ErrFootballNotFound
	}
	return s.fetch(ctx,
		fmt.Sprintf("%s:team:%d", constants.FootballCachePrefix, id),
		fmt.Sprintf("/teams/%d", id),
	)
}

// fetch 先查缓存，未命中回源上游并写缓存
func (s *FootballService) fetch(ctx context.Context, cacheKey, path string) (json.RawMessage, error) {
	var cached json.RawMessage
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		logger.Warnw("football_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if s.apiToken != "" {
		req.Header.Set("X-Auth-Token", s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warnw("football_upstream_failed", "path", path, "error", err)
		return nil, ErrFootballUpstream
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrFootballNotFound
	case resp.StatusCode != http.StatusOK:
		logger.Warnw("football_upstream_status", "path", path, "status", resp.StatusCode)
		return nil, ErrFootballUpstream
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrFootballUpstream
	}
	if !json.Valid(body) {
		return nil, ErrFootballUpstream
	}

	payload := json.RawMessage(body)
	if err := cache.SetJSON(ctx, cacheKey, payload, s.cacheTTL); err != nil {
		logger.Warnw("football_cache_write_failed", "key", cacheKey, "error", err)
	}
	return payload, nil
}
