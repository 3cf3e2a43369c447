package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// ActivityType enumerates the feed event kinds.
type ActivityType string

const (
	ActivityBookRead           ActivityType = "book_read"
	ActivityReviewAdded        ActivityType = "review_added"
	ActivityChallengeJoined    ActivityType = "challenge_joined"
	ActivityChallengeCompleted ActivityType = "challenge_completed"
	ActivityGoalAchieved       ActivityType = "goal_achieved"
	ActivityFollowing          ActivityType = "following"
)

// ActivityPayload is the tagged union over the per-kind payloads. Exactly one
// concrete type corresponds to each ActivityType; render code switches over
// the concrete type.
type ActivityPayload interface {
	activityPayload()
}

// BookReadPayload accompanies book_read activities.
type BookReadPayload struct {
	Book Book `json:"book"`
}

// ReviewSnippet is the short review excerpt carried in the feed.
type ReviewSnippet struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// ReviewAddedPayload accompanies review_added activities.
type ReviewAddedPayload struct {
	Book   *Book         `json:"book,omitempty"`
	Review ReviewSnippet `json:"review"`
}

// ChallengeRef is the minimal challenge reference carried in the feed.
type ChallengeRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ChallengePayload accompanies challenge_joined and challenge_completed
// activities.
type ChallengePayload struct {
	Challenge ChallengeRef `json:"challenge"`
}

// GoalSummary is the goal reference carried in goal_achieved activities.
type GoalSummary struct {
	Year   int    `json:"year"`
	Kind   string `json:"type"` // books or pages
	Target int    `json:"target"`
}

// GoalAchievedPayload accompanies goal_achieved activities.
type GoalAchievedPayload struct {
	Goal GoalSummary `json:"goal"`
}

// FollowingPayload accompanies following activities.
type FollowingPayload struct {
	FollowedUser User `json:"followed_user"`
}

func (BookReadPayload) activityPayload()     {}
func (ReviewAddedPayload) activityPayload()  {}
func (ChallengePayload) activityPayload()    {}
func (GoalAchievedPayload) activityPayload() {}
func (FollowingPayload) activityPayload()    {}

// Activity is one feed event: an actor, a kind, and the kind's payload.
// Activities are read-only to the client; the backend emits them as side
// effects of other mutations.
type Activity struct {
	ID        int64
	User      User
	Type      ActivityType
	Payload   ActivityPayload
	CreatedAt string
}

// UnmarshalJSON decodes the wire envelope and resolves the payload from the
// type tag.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var envelope struct {
		ID        int64           `json:"id"`
		User      User            `json:"user"`
		Type      ActivityType    `json:"type"`
		Data      json.RawMessage `json:"data"`
		CreatedAt string          `json:"created_at"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	a.ID = envelope.ID
	a.User = envelope.User
	a.Type = envelope.Type
	a.CreatedAt = envelope.CreatedAt

	payload, err := decodeActivityPayload(envelope.Type, envelope.Data)
	if err != nil {
		return err
	}
	a.Payload = payload
	return nil
}

func decodeActivityPayload(kind ActivityType, data json.RawMessage) (ActivityPayload, error) {
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	switch kind {
	case ActivityBookRead:
		var p BookReadPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActivityReviewAdded:
		var p ReviewAddedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActivityChallengeJoined, ActivityChallengeCompleted:
		var p ChallengePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActivityGoalAchieved:
		var p GoalAchievedPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ActivityFollowing:
		var p FollowingPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown activity type %q", kind)
}

// SocialService covers the follow graph and the activity feed.
type SocialService struct {
	d Doer
}

// Followers returns the users following userID.
func (s *SocialService) Followers(ctx context.Context, userID int64) ([]User, error) {
	var users []User
	err := s.d.Get(ctx, fmt.Sprintf("/users/%d/followers", userID), nil, &users)
	return users, err
}

// Following returns the users userID follows.
func (s *SocialService) Following(ctx context.Context, userID int64) ([]User, error) {
	var users []User
	err := s.d.Get(ctx, fmt.Sprintf("/users/%d/following", userID), nil, &users)
	return users, err
}

// Follow adds a follow edge from the caller to userID.
func (s *SocialService) Follow(ctx context.Context, userID int64) error {
	return s.d.Post(ctx, fmt.Sprintf("/users/%d/follow", userID), nil, nil)
}

// Unfollow removes the follow edge from the caller to userID.
func (s *SocialService) Unfollow(ctx context.Context, userID int64) error {
	return s.d.Delete(ctx, fmt.Sprintf("/users/%d/unfollow", userID))
}

// Feed returns the caller's activity feed.
func (s *SocialService) Feed(ctx context.Context) ([]Activity, error) {
	var feed []Activity
	err := s.d.Get(ctx, "/feed", nil, &feed)
	return feed, err
}

// UserActivities returns one user's activities.
func (s *SocialService) UserActivities(ctx context.Context, userID int64) ([]Activity, error) {
	var activities []Activity
	err := s.d.Get(ctx, fmt.Sprintf("/users/%d/activities", userID), nil, &activities)
	return activities, err
}
