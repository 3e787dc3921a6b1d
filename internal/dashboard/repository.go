package dashboard

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/reel/internal/videos"
	"github.com/JaimeStill/reel/pkg/cache"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/repository"
)

type counter struct {
	name  string
	query string
}

var counters = []counter{
	{"videos", "SELECT COUNT(*) FROM videos WHERE owner_id = $1 AND is_published"},
	{"views", "SELECT COALESCE(SUM(views), 0)::bigint FROM videos WHERE owner_id = $1 AND is_published"},
	{"subscribers", "SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1"},
	{"likes", "SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1"},
	{"comments", "SELECT COUNT(*) FROM comments c JOIN videos v ON v.id = c.video_id WHERE v.owner_id = $1"},
	{"tweets", "SELECT COUNT(*) FROM tweets WHERE owner_id = $1"},
}

const trendSQL = `
	SELECT d::date, COUNT(x.id)
	FROM generate_series((current_date - ($2::int - 1))::timestamp, current_date::timestamp, interval '1 day') AS d
	LEFT JOIN (
		SELECT l.id, l.created_at
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		WHERE v.owner_id = $1 AND l.created_at >= current_date - ($2::int - 1)
	) x ON x.created_at::date = d::date
	GROUP BY d
	ORDER BY d`

type repo struct {
	db         *sql.DB
	videos     videos.System
	cache      cache.System
	ttl        time.Duration
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a dashboard repository implementing the System interface.
// Stats are cached for ttl when the cache is enabled.
func New(
	db *sql.DB,
	videos videos.System,
	cache cache.System,
	ttl time.Duration,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		videos:     videos,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.With("system", "dashboard"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Stats runs every counter concurrently. A cached value, when present, is
// returned as is and may lag writes by up to the cache ttl.
func (r *repo) Stats(ctx context.Context, channelID uuid.UUID) (*Stats, error) {
	key := cache.Key("dashboard", "stats", channelID.String())

	var cached Stats
	hit, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.logger.Warn("stats cache read failed", "channel", channelID, "error", err)
	}
	if hit {
		return &cached, nil
	}

	totals := make([]int64, len(counters))
	var trend []TrendPoint

	g, gctx := errgroup.WithContext(ctx)

	for i, c := range counters {
		g.Go(func() error {
			n, err := repository.Scalar[int64](gctx, r.db, c.query, channelID)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.name, err)
			}
			totals[i] = n
			return nil
		})
	}

	g.Go(func() error {
		points, err := repository.QueryMany(gctx, r.db, trendSQL, []any{channelID, TrendDays}, scanTrendPoint)
		if err != nil {
			return fmt.Errorf("like trend: %w", err)
		}
		trend = points
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalVideos:      totals[0],
		TotalViews:       totals[1],
		TotalSubscribers: totals[2],
		TotalLikes:       totals[3],
		TotalComments:    totals[4],
		TotalTweets:      totals[5],
		LikeTrend:        trend,
		GeneratedAt:      time.Now().UTC(),
	}

	if err := r.cache.Set(ctx, key, stats, r.ttl); err != nil {
		r.logger.Warn("stats cache write failed", "channel", channelID, "error", err)
	}

	return stats, nil
}

func (r *repo) Videos(
	ctx context.Context,
	channelID uuid.UUID,
	isPublished *bool,
	page pagination.PageRequest,
) (*pagination.PageResult[videos.Video], error) {
	return r.videos.Channel(ctx, channelID, isPublished, page)
}

func scanTrendPoint(s repository.Scanner) (TrendPoint, error) {
	var (
		day time.Time
		p   TrendPoint
	)
	if err := s.Scan(&day, &p.Count); err != nil {
		return p, err
	}
	p.Date = day.Format(time.DateOnly)
	return p, nil
}
