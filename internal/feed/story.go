package feed

// Story is one candidate text narrative from the feed source. It is immutable
// once fetched; identity is ID.
type Story struct {
	ID        string
	Subreddit string
	Title     string
	Body      string
	NSFW      bool
	Score     int
}
