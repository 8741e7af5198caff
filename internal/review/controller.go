package review

import (
	"fmt"
)

// RatingPhase tracks where a per-item rating submission is in its lifecycle.
type RatingPhase int

const (
	// RatingIdle means no submission has been started for the item.
	RatingIdle RatingPhase = iota
	// RatingPending means an optimistic value has been applied locally and
	// the submit call has not resolved yet.
	RatingPending
	// RatingCommitted means the server accepted the rating and its response
	// replaced the local aggregate entry.
	RatingCommitted
	// RatingRolledBack means the server rejected the rating and MyRating was
	// restored to its pre-call value.
	RatingRolledBack
)

func (p RatingPhase) String() string {
	switch p {
	case RatingIdle:
		return "idle"
	case RatingPending:
		return "pending"
	case RatingCommitted:
		return "committed"
	case RatingRolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

type ratingState struct {
	phase      RatingPhase
	prev       int // MyRating captured before the optimistic apply
	optimistic int // value written optimistically
}

// Controller owns the per-view review state: the aggregate-only summary map,
// the caller-scoped summary map, transient hover values, and the optimistic
// rating state machine per item. It contains pure data logic with no network
// or Bubble Tea dependencies; callers drive it from whatever event loop they
// run and apply network results via Commit/Rollback.
//
// The two summary maps are deliberately kept separate and merged only in
// Merged: aggregate data is shared across users while caller-scoped data is
// private to this session.
//
// Concurrent rating submissions for the same item are not sequenced; the
// last response applied wins.
type Controller struct {
	aggregates map[string]Summary
	personal   map[string]Summary
	hover      map[string]int
	ratings    map[string]ratingState
}

// NewController creates an empty review controller.
func NewController() *Controller {
	return &Controller{
		aggregates: make(map[string]Summary),
		personal:   make(map[string]Summary),
		hover:      make(map[string]int),
		ratings:    make(map[string]ratingState),
	}
}

// ApplySummaries replaces both summary maps wholesale, typically with the
// result of Loader.LoadSummaries. Hover and rating state are untouched.
func (c *Controller) ApplySummaries(aggregates, personal map[string]Summary) {
	c.aggregates = make(map[string]Summary, len(aggregates))
	for id, s := range aggregates {
		c.aggregates[id] = s
	}
	c.personal = make(map[string]Summary, len(personal))
	for id, s := range personal {
		c.personal[id] = s
	}
}

// UpdateSummary applies a freshly fetched per-item summary without touching
// other items: aggregate fields go into the aggregate entry, CanReview and
// MyRating into the caller-scoped entry. Used after single-item reloads such
// as the post-comment refresh.
func (c *Controller) UpdateSummary(s Summary) {
	agg := c.aggregates[s.FoodID]
	agg.FoodID = s.FoodID
	agg.AvgRating = s.AvgRating
	agg.RatingCount = s.RatingCount
	agg.CommentCount = s.CommentCount
	c.aggregates[s.FoodID] = agg

	p := c.personal[s.FoodID]
	p.FoodID = s.FoodID
	p.CanReview = s.CanReview
	p.MyRating = s.MyRating
	c.personal[s.FoodID] = p
}

// Aggregate returns the aggregate-only summary for the item, if loaded.
func (c *Controller) Aggregate(foodID string) (Summary, bool) {
	s, ok := c.aggregates[foodID]
	return s, ok
}

// Personal returns the caller-scoped summary for the item, if loaded.
func (c *Controller) Personal(foodID string) (Summary, bool) {
	s, ok := c.personal[foodID]
	return s, ok
}

// Merged combines the two maps for rendering. Aggregate fields come from the
// aggregate map when present, falling back to the caller-scoped entry;
// CanReview and MyRating always come from the caller-scoped entry.
func (c *Controller) Merged(foodID string) Summary {
	out := ZeroSummary(foodID)

	src, ok := c.aggregates[foodID]
	if !ok {
		src = c.personal[foodID]
	}
	out.AvgRating = src.AvgRating
	out.RatingCount = src.RatingCount
	out.CommentCount = src.CommentCount

	if p, ok := c.personal[foodID]; ok {
		out.CanReview = p.CanReview
		out.MyRating = p.MyRating
	}
	return out
}

// CanReview reports whether the viewer may rate or comment on the item.
func (c *Controller) CanReview(foodID string) bool {
	return c.personal[foodID].CanReview
}

// MyRating returns the viewer's own rating for the item, 0 if not rated.
func (c *Controller) MyRating(foodID string) int {
	return c.personal[foodID].MyRating
}

// SetHover records a transient pointer-hover star preview for the item.
func (c *Controller) SetHover(foodID string, star int) {
	if star < 1 || star > 5 {
		return
	}
	c.hover[foodID] = star
}

// ClearHover removes the hover preview for the item.
func (c *Controller) ClearHover(foodID string) {
	delete(c.hover, foodID)
}

// Hover returns the active hover value for the item, 0 if none.
func (c *Controller) Hover(foodID string) int {
	return c.hover[foodID]
}

// DisplayRating returns the star value the UI should show for the item:
// the hover value while active, else the viewer's submitted rating, else 0.
func (c *Controller) DisplayRating(foodID string) int {
	if h := c.hover[foodID]; h != 0 {
		return h
	}
	return c.personal[foodID].MyRating
}

// BeginRating applies a rating optimistically: it captures the previous
// MyRating, writes the new value into the caller-scoped map, marks the item
// reviewable, and moves the item's state machine to Pending. The returned
// value is the captured previous rating.
//
// The caller is expected to issue the submit call afterwards and then invoke
// exactly one of CommitRating or RollbackRating with the outcome.
func (c *Controller) BeginRating(foodID string, rating int) (int, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating %d out of range [1,5]", rating)
	}

	prev := c.personal[foodID].MyRating

	p := c.personal[foodID]
	p.FoodID = foodID
	p.MyRating = rating
	p.CanReview = true
	c.personal[foodID] = p

	c.ratings[foodID] = ratingState{phase: RatingPending, prev: prev, optimistic: rating}
	return prev, nil
}

// CommitRating applies a successful submit response. The server's aggregate
// fields replace the local aggregate entry wholesale; MyRating is taken from
// the response when set, else the optimistically written value stands.
func (c *Controller) CommitRating(foodID string, resp Summary) {
	st := c.ratings[foodID]

	agg := c.aggregates[foodID]
	agg.FoodID = foodID
	agg.AvgRating = resp.AvgRating
	agg.RatingCount = resp.RatingCount
	agg.CommentCount = resp.CommentCount
	c.aggregates[foodID] = agg

	my := resp.MyRating
	if my == 0 {
		my = st.optimistic
	}

	p := c.personal[foodID]
	p.FoodID = foodID
	p.MyRating = my
	p.CanReview = true
	c.personal[foodID] = p

	st.phase = RatingCommitted
	c.ratings[foodID] = st
}

// RollbackRating restores MyRating to the value captured by BeginRating.
// Eligibility may have changed server-side between attempts, so the failed
// submit is never retried automatically.
func (c *Controller) RollbackRating(foodID string) {
	st := c.ratings[foodID]

	p := c.personal[foodID]
	p.FoodID = foodID
	p.MyRating = st.prev
	c.personal[foodID] = p

	st.phase = RatingRolledBack
	c.ratings[foodID] = st
}

// RatingPhase returns the state machine phase for the item.
func (c *Controller) RatingPhase(foodID string) RatingPhase {
	return c.ratings[foodID].phase
}

// Remove drops all state for an item, e.g. after the item is deleted.
func (c *Controller) Remove(foodID string) {
	delete(c.aggregates, foodID)
	delete(c.personal, foodID)
	delete(c.hover, foodID)
	delete(c.ratings, foodID)
}
