package server

import "github.com/orgball2608/insta-story-downloader/internal/domain"

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type storiesRequest struct {
	Username string `json:"username" query:"username"`
}

type userStoriesResponse struct {
	Success  bool               `json:"success"`
	Username string             `json:"username"`
	User     domain.UserProfile `json:"user"`
	Stories  []domain.StoryItem `json:"stories"`
	Count    int                `json:"count"`
	Message  string             `json:"message,omitempty"`
}

type highlightResponse struct {
	Success   bool               `json:"success"`
	Type      string             `json:"type"`
	Highlight highlightSummary   `json:"highlight"`
	User      domain.UserSummary `json:"user"`
	Stories   []domain.StoryItem `json:"stories"`
	Count     int                `json:"count"`
}

type highlightSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
}

type healthResponse struct {
	Status                string `json:"status"`
	Timestamp             string `json:"timestamp"`
	CredentialsConfigured bool   `json:"credentials_configured"`
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type debugCredentials struct {
	SessionIDSet     bool   `json:"session_id_set"`
	SessionIDPreview string `json:"session_id_preview,omitempty"`
	DSUserID         string `json:"ds_user_id"`
	CSRFTokenSet     bool   `json:"csrf_token_set"`
	MIDSet           bool   `json:"mid_set"`
}

type debugCheck struct {
	Status     string `json:"status"`
	Username   string `json:"username,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

type debugResponse struct {
	Credentials        debugCredentials `json:"credentials"`
	APIDomain          string           `json:"api_domain"`
	CookiesInSession   []string         `json:"cookies_in_session"`
	SessionTest        debugCheck       `json:"session_test"`
	UsernameLookupTest debugCheck       `json:"username_lookup_test"`
}
