package engagement

// LikeResult reports the outcome of a like toggle: whether the actor now
// likes the resource, and the resource's resulting like counter.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
