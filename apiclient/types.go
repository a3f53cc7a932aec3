package apiclient

import "time"

// User is the authenticated account identity returned by the auth and
// profile endpoints. Opaque to routing; views consume it for display.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupInput is the account creation request body. Email is optional.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is the envelope returned by login and validate.
type AuthResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}

// Anime is a catalog card entry, the flat shape served by every
// listing endpoint (search, rails, lists, history).
type Anime struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	CoverImage   string      `json:"cover_image,omitempty"`
	Format       string      `json:"format,omitempty"`
	Episodes     int         `json:"episodes,omitempty"`
	AverageScore int         `json:"average_score,omitempty"`
	UserStatus   WatchStatus `json:"userStatus,omitempty"`
}

// AnimeTitle carries the localized titles of a detail record.
type AnimeTitle struct {
	English string `json:"english,omitempty"`
	Romaji  string `json:"romaji,omitempty"`
	Native  string `json:"native,omitempty"`
}

// CoverImage holds detail-record artwork variants.
type CoverImage struct {
	Large  string `json:"large,omitempty"`
	Medium string `json:"medium,omitempty"`
}

// Studio is a production studio node.
type Studio struct {
	Name string `json:"name"`
}

// StudioList wraps the studio nodes of a detail record.
type StudioList struct {
	Nodes []Studio `json:"nodes,omitempty"`
}

// AnimeDetails is the full detail-page record, shaped after the
// upstream catalog rather than the flat card entry.
type AnimeDetails struct {
	ID           int        `json:"id"`
	Title        AnimeTitle `json:"title"`
	CoverImage   CoverImage `json:"coverImage"`
	Description  string     `json:"description,omitempty"`
	Genres       []string   `json:"genres,omitempty"`
	Format       string     `json:"format,omitempty"`
	Episodes     int        `json:"episodes,omitempty"`
	Duration     int        `json:"duration,omitempty"`
	Status       string     `json:"status,omitempty"`
	Season       string     `json:"season,omitempty"`
	SeasonYear   int        `json:"seasonYear,omitempty"`
	AverageScore int        `json:"averageScore,omitempty"`
	Popularity   int        `json:"popularity,omitempty"`
	Studios      StudioList `json:"studios"`
}

// WatchProvider is one streaming provider listed for an anime.
type WatchProvider struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Logo string `json:"logo,omitempty"`
}

// AnimeDetail bundles the detail record with its providers, as served
// by the single-anime endpoint.
type AnimeDetail struct {
	Anime     AnimeDetails    `json:"anime"`
	Providers []WatchProvider `json:"providers"`
}

// PageMeta is the pagination envelope reported by listing endpoints.
type PageMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	PerPage     int  `json:"perPage"`
	TotalPages  int  `json:"totalPages,omitempty"`
	HasNextPage bool `json:"hasNextPage,omitempty"`
}

// AnimePage is a page of catalog card entries.
type AnimePage struct {
	Data []Anime  `json:"data"`
	Meta PageMeta `json:"meta"`
}

// WatchStatus is the membership state of an anime on a user's list.
type WatchStatus string

const (
	StatusWatching   WatchStatus = "WATCHING"
	StatusCompleted  WatchStatus = "COMPLETED"
	StatusPlanned    WatchStatus = "PLANNED"
	StatusPaused     WatchStatus = "PAUSED"
	StatusDropped    WatchStatus = "DROPPED"
	StatusRewatching WatchStatus = "REWATCHING"

	// StatusRemoving is the sentinel sent to drop an entry from the
	// list rather than change its state.
	StatusRemoving WatchStatus = "REMOVING"
)

// ListEntry is one row of a user's anime list. The backend serializes
// its stored record directly, hence the exported-field key casing.
type ListEntry struct {
	ID           int         `json:"ID"`
	AnimeID      int         `json:"AnimeExternalID"`
	Status       WatchStatus `json:"Status"`
	Progress     int         `json:"Progress,omitempty"`
	Score        int         `json:"Score,omitempty"`
	AnimeDetails *Anime      `json:"AnimeDetails,omitempty"`
}

// ListPage is a page of list entries.
type ListPage struct {
	Data []ListEntry `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// ListEntryInput adds or updates an anime on the user's list, keyed by
// the anime's external catalog id.
type ListEntryInput struct {
	AnimeID      int         `json:"anime_id"`
	Status       WatchStatus `json:"status"`
	Score        *int        `json:"score,omitempty"`
	Progress     *int        `json:"progress,omitempty"`
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      *time.Time  `json:"end_date,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	RewatchCount *int        `json:"rewatch_count,omitempty"`
}

// ListEntryPatch updates individual fields of an existing list entry.
type ListEntryPatch struct {
	Status       *WatchStatus `json:"status,omitempty"`
	Score        *int         `json:"score,omitempty"`
	Progress     *int         `json:"progress,omitempty"`
	StartDate    *time.Time   `json:"start_date,omitempty"`
	EndDate      *time.Time   `json:"end_date,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	RewatchCount *int         `json:"rewatch_count,omitempty"`
}

// ListStats summarizes a user's anime list.
type ListStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// HistoryEntry records one anime detail page viewed by the user.
type HistoryEntry struct {
	ID              int       `json:"ID"`
	AnimeExternalID int       `json:"anime_external_id"`
	LastViewedAt    time.Time `json:"last_viewed_at"`
	ViewCount       int       `json:"view_count"`
	AnimeDetails    *Anime    `json:"AnimeDetails,omitempty"`
}

// HistoryPage is a page of view history entries.
type HistoryPage struct {
	Data []HistoryEntry `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// ProfileUpdate changes profile fields; at least one must be set.
type ProfileUpdate struct {
	Email          *string `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UsernameChange is the change-username request body.
type UsernameChange struct {
	NewUsername     string `json:"new_username"`
	CurrentPassword string `json:"current_password"`
}

// EmailChange is the change-email request body.
type EmailChange struct {
	NewEmail        string `json:"new_email"`
	CurrentPassword string `json:"current_password"`
}

// MessageResponse is the acknowledgement envelope returned by account
// mutation endpoints.
type MessageResponse struct {
	Message     string `json:"message,omitempty"`
	NewUsername string `json:"new_username,omitempty"`
	NewEmail    string `json:"new_email,omitempty"`
}
