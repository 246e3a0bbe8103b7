package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/orgball2608/insta-story-downloader/internal/classifier"
	"github.com/orgball2608/insta-story-downloader/internal/domain"
	apperrors "github.com/orgball2608/insta-story-downloader/pkg/errors"
)

func (s *Server) handleStories(c echo.Context) error {
	input := c.QueryParam("username")
	if c.Request().Method == http.MethodPost {
		var req storiesRequest
		if err := c.Bind(&req); err == nil && req.Username != "" {
			input = req.Username
		}
	}

	if input == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "Username parameter is required"})
	}

	ref, err := classifier.Classify(input)
	if err != nil {
		return s.errorJSON(c, err)
	}

	if ref.Kind == domain.InputHighlight {
		return s.respondHighlight(c, ref.Value)
	}
	return s.respondUserStories(c, ref.Value)
}

func (s *Server) respondHighlight(c echo.Context, highlightID string) error {
	ctx := c.Request().Context()

	highlight, stories, err := s.instagram.GetHighlightStories(ctx, highlightID)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, highlightResponse{
		Success: true,
		Type:    "highlight",
		Highlight: highlightSummary{
			ID:       highlight.ID,
			Title:    highlight.Title,
			CoverURL: highlight.CoverURL,
		},
		User:    highlight.User,
		Stories: stories,
		Count:   len(stories),
	})
}

func (s *Server) respondUserStories(c echo.Context, username string) error {
	ctx := c.Request().Context()

	userID, err := s.resolver.Resolve(ctx, username)
	if err != nil {
		return s.errorJSON(c, err)
	}

	profile, err := s.instagram.GetUserInfo(ctx, userID)
	if err != nil {
		// The profile summary is best effort; resolution already succeeded.
		s.logger.Warn("Failed to get user info", "user_id", userID, "error", err)
		profile = domain.UserProfile{}
	}
	if profile.PK == "" {
		profile.PK = userID
	}
	if profile.Username == "" {
		profile.Username = username
	}

	if profile.IsPrivate {
		return c.JSON(http.StatusOK, userStoriesResponse{
			Success:  true,
			Username: username,
			User:     profile,
			Stories:  []domain.StoryItem{},
			Message:  "This account is private",
		})
	}

	stories, err := s.instagram.GetUserStories(ctx, userID)
	if err != nil {
		return s.errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, userStoriesResponse{
		Success:  true,
		Username: username,
		User:     profile,
		Stories:  stories,
		Count:    len(stories),
	})
}

func (s *Server) handleDownload(c echo.Context) error {
	rawURL := c.QueryParam("url")
	filename := c.QueryParam("filename")
	mediaType := c.QueryParam("type")

	if rawURL == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Success: false, Error: "URL parameter is required"})
	}
	if filename == "" {
		filename = "instagram_story"
	}

	body, length, err := s.downloader.Download(c.Request().Context(), rawURL)
	if err != nil {
		return s.errorJSON(c, err)
	}
	defer body.Close()

	contentType, ext := "image/jpeg", "jpg"
	if mediaType == "video" {
		contentType, ext = "video/mp4", "mp4"
	}

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, filename, ext))
	if length > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(length, 10))
	}

	return c.Stream(http.StatusOK, contentType, body)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:                "healthy",
		Timestamp:             time.Now().UTC().Format(time.RFC3339),
		CredentialsConfigured: s.cfg.CredentialsConfigured(),
	})
}

func (s *Server) handleDebug(c echo.Context) error {
	ctx := c.Request().Context()
	ig := s.cfg.Instagram

	resp := debugResponse{
		Credentials: debugCredentials{
			SessionIDSet: ig.SessionID != "",
			DSUserID:     ig.DSUserID,
			CSRFTokenSet: ig.CSRFToken != "",
			MIDSet:       ig.MID != "",
		},
		APIDomain:        ig.APIDomain,
		CookiesInSession: s.transport.CookieNames(),
	}
	if len(ig.SessionID) > 20 {
		resp.Credentials.SessionIDPreview = ig.SessionID[:20] + "..."
	}

	if ig.DSUserID == "" {
		resp.SessionTest = debugCheck{Status: "NO_USER_ID", Error: "IG_DS_USER_ID not set"}
	} else if profile, err := s.instagram.GetUserInfo(ctx, ig.DSUserID); err != nil {
		resp.SessionTest = debugCheck{
			Status:     "FAILED",
			Error:      apperrors.GetMessage(err),
			StatusCode: apperrors.HTTPStatus(err),
		}
	} else {
		resp.SessionTest = debugCheck{
			Status:   "SUCCESS",
			Username: profile.Username,
			FullName: profile.FullName,
		}
	}

	testUser := c.QueryParam("test_user")
	if testUser == "" {
		testUser = "instagram"
	}
	if userID, err := s.resolver.Resolve(ctx, testUser); err != nil {
		resp.UsernameLookupTest = debugCheck{
			Status:     "FAILED",
			Username:   testUser,
			Error:      apperrors.GetMessage(err),
			StatusCode: apperrors.HTTPStatus(err),
		}
	} else {
		resp.UsernameLookupTest = debugCheck{
			Status:   "SUCCESS",
			Username: testUser,
			UserID:   userID,
		}
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleReset(c echo.Context) error {
	s.transport.Reset()
	return c.JSON(http.StatusOK, resetResponse{Success: true, Message: "Client reset successfully"})
}

// errorJSON maps a typed error to its HTTP-equivalent status. Unclassified
// errors are hidden behind a generic message.
func (s *Server) errorJSON(c echo.Context, err error) error {
	status := apperrors.HTTPStatus(err)
	message := apperrors.GetMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("Unexpected error", "path", c.Path(), "error", err)
		message = "An unexpected error occurred"
	}
	return c.JSON(status, errorResponse{Success: false, Error: message})
}
