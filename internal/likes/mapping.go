package likes

import (
	"fmt"

	"github.com/JaimeStill/reel/internal/videos"
	"github.com/JaimeStill/reel/pkg/query"
	"github.com/JaimeStill/reel/pkg/repository"
)

var likedProjection = videos.Join(
	query.
		NewProjectionMap("public", "likes", "l").
		Project("created_at", "LikedAt"),
	"v", "o", "JOIN", "v.id = l.video_id",
)

var likedSort = query.SortField{
	Field:      "LikedAt",
	Descending: true,
}

func scanLiked(s repository.Scanner) (LikedVideo, error) {
	var lv LikedVideo
	v, err := videos.Scan(s, &lv.LikedAt)
	if err != nil {
		return lv, err
	}
	lv.Video = v
	return lv, nil
}

// toggleSQL builds the single-statement toggle for t. The statement deletes an
// existing like, or inserts one when none was deleted. Both require the target
// to be visible to the caller. It returns whether the target is visible and
// whether a like was inserted.
func toggleSQL(t target) string {
	return fmt.Sprintf(`
		WITH target AS (
			%[1]s
		), deleted AS (
			DELETE FROM likes
			WHERE liked_by = $1 AND %[2]s = $2 AND EXISTS (SELECT 1 FROM target)
			RETURNING id
		), inserted AS (
			INSERT INTO likes (liked_by, %[2]s)
			SELECT $1, id FROM target
			WHERE NOT EXISTS (SELECT 1 FROM deleted)
			ON CONFLICT (liked_by, %[2]s) WHERE %[2]s IS NOT NULL DO NOTHING
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM target), EXISTS (SELECT 1 FROM inserted)`,
		t.lookup, t.column,
	)
}

func statusSQL(t target) string {
	return fmt.Sprintf(
		"SELECT EXISTS (%[1]s), EXISTS (SELECT 1 FROM likes WHERE liked_by = $1 AND %[2]s = $2)",
		t.lookup, t.column,
	)
}
