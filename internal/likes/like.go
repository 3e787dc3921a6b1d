// Package likes implements per-user likes on videos, comments, and tweets.
//
// A like row references exactly one target. Toggling is a single statement,
// so a pair is always either absent or present once.
package likes

import (
	"time"

	"github.com/JaimeStill/reel/internal/videos"
)

// Target identifies the kind of record a like points at.
type Target string

// Like targets.
const (
	TargetVideo   Target = "video"
	TargetComment Target = "comment"
	TargetTweet   Target = "tweet"
)

// target describes where a kind of like points. lookup selects the row $2
// when user $1 may see it: unpublished videos, and comments on them, are
// visible to the video owner only.
type target struct {
	column string
	lookup string
}

var targets = map[Target]target{
	TargetVideo: {
		column: "video_id",
		lookup: "SELECT id FROM videos WHERE id = $2 AND (is_published OR owner_id = $1)",
	},
	TargetComment: {
		column: "comment_id",
		lookup: `SELECT c.id FROM comments c JOIN videos v ON v.id = c.video_id
			WHERE c.id = $2 AND (v.is_published OR v.owner_id = $1)`,
	},
	TargetTweet: {
		column: "tweet_id",
		lookup: "SELECT id FROM tweets WHERE id = $2",
	},
}

// Status reports whether the caller currently likes a target.
type Status struct {
	IsLiked bool `json:"isLiked"`
}

// LikedVideo is a video the caller likes, with the time of the like.
type LikedVideo struct {
	videos.Video
	LikedAt time.Time `json:"likedAt"`
}

// Recorder receives toggle outcomes.
type Recorder interface {
	RecordToggle(kind string, state bool)
}
