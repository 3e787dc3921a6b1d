// Package dashboard reports channel statistics and lists a channel's own videos.
package dashboard

import "time"

// Stats summarizes a channel.
type Stats struct {
	TotalVideos      int64        `json:"totalVideos"`
	TotalViews       int64        `json:"totalViews"`
	TotalSubscribers int64        `json:"totalSubscribers"`
	TotalLikes       int64        `json:"totalLikes"`
	TotalComments    int64        `json:"totalComments"`
	TotalTweets      int64        `json:"totalTweets"`
	LikeTrend        []TrendPoint `json:"likeTrend"`
	GeneratedAt      time.Time    `json:"generatedAt"`
}

// TrendPoint counts likes received on one calendar day.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TrendDays is the number of daily buckets in a like trend, including today.
const TrendDays = 30
