package model

// Contributor represents a top-contributor entry in the analytics view
type Contributor struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	ShoutoutsSent int    `json:"shoutouts_sent"`
}

// TaggedUser represents a most-recognized entry in the analytics view
type TaggedUser struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	TimesTagged int    `json:"times_tagged"`
}

// DepartmentStat represents per-department shout-out volume
type DepartmentStat struct {
	Department    string `json:"department"`
	ShoutoutCount int    `json:"shoutout_count"`
}

// Analytics represents the admin analytics payload
type Analytics struct {
	TotalUsers      int              `json:"total_users"`
	TotalShoutouts  int              `json:"total_shoutouts"`
	TopContributors []Contributor    `json:"top_contributors"`
	MostTagged      []TaggedUser     `json:"most_tagged"`
	DepartmentStats []DepartmentStat `json:"department_stats"`
}

// LeaderboardSender represents a top-sender leaderboard row
type LeaderboardSender struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Department    string `json:"department"`
	ShoutoutsSent int    `json:"shoutouts_sent"`
}

// LeaderboardReceiver represents a top-receiver leaderboard row
type LeaderboardReceiver struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Department        string `json:"department"`
	ShoutoutsReceived int    `json:"shoutouts_received"`
}

// Leaderboard represents the recognition leaderboard payload
type Leaderboard struct {
	TopSenders   []LeaderboardSender   `json:"top_senders"`
	TopReceivers []LeaderboardReceiver `json:"top_receivers"`
}
