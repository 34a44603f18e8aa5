// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"math"
	"time"
)

// RecencyWindowDays is how far back a review may be published and still count
// towards the recent rating.
const RecencyWindowDays = 90

// publishTimeLayouts are the ISO-8601 shapes accepted for Review.PublishTime,
// tried in order.
var publishTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Review is a single user review as returned by the places provider.
type Review struct {
	Rating      *float64 `json:"rating,omitempty"`
	PublishTime string   `json:"publishTime,omitempty"`
}

// RatingAggregate summarizes the reviews published inside the recency window.
type RatingAggregate struct {
	RecentRating      *float64 `json:"recent_rating"`
	RecentReviewCount int      `json:"recent_review_count"`
}

func parsePublishTime(s string) (time.Time, bool) {
	for _, layout := range publishTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// wallClock keeps the calendar fields of t and drops its zone, reinterpreting
// them in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// CalculateRecentRating averages the ratings of the reviews published in the
// last RecencyWindowDays relative to now.
//
// Timestamps are compared by wall clock: the zone of each publish time is
// discarded and its fields are read in now's location. Near the cutoff this
// differs from an instant comparison by up to the zone offset.
//
// Reviews with a missing or unparsable publish time, or without a rating, are
// ignored. The mean is rounded to one decimal.
func CalculateRecentRating(reviews []Review, now time.Time) RatingAggregate {
	cutoff := now.AddDate(0, 0, -RecencyWindowDays)

	var (
		sum   float64
		count int
	)

	for _, review := range reviews {
		if review.PublishTime == "" {
			continue
		}

		published, ok := parsePublishTime(review.PublishTime)
		if !ok {
			continue
		}

		if wallClock(published, now.Location()).Before(cutoff) {
			continue
		}

		if review.Rating == nil {
			continue
		}

		sum += *review.Rating
		count++
	}

	if count == 0 {
		return RatingAggregate{}
	}

	avg := math.Round(sum/float64(count)*10) / 10

	return RatingAggregate{RecentRating: &avg, RecentReviewCount: count}
}

// CalculateRecentRatingNow is CalculateRecentRating relative to the current
// local time.
func CalculateRecentRatingNow(reviews []Review) RatingAggregate {
	return CalculateRecentRating(reviews, time.Now())
}
