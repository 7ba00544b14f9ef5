// Package forms validates user input before it reaches the engine.
// Validation failures come back as AppErrors so the shell can render
// them next to the offending field.
package forms

import (
	"strings"

	"github.com/google/uuid"

	"broad-forum/internal/utils"
)

const (
	maxTitleLength   = 100
	maxSummaryLength = 200
)

// LoginForm carries the sign-in fields.
type LoginForm struct {
	Username string
	Password string
}

func (f *LoginForm) Validate() *utils.AppError {
	if strings.TrimSpace(f.Username) == "" {
		return utils.NewValidationError("username is required")
	}
	if f.Password == "" {
		return utils.NewValidationError("password is required")
	}
	return nil
}

// RegisterForm carries the account creation fields plus the captcha
// answer and the agreement checkbox.
type RegisterForm struct {
	Username        string
	DisplayName     string
	Password        string
	ConfirmPassword string
	CaptchaInput    string
	Agreed          bool
}

// Validate checks fields in the order the form presents them. On a
// captcha mismatch the challenge regenerates so the old code cannot
// be retried.
func (f *RegisterForm) Validate(captcha *Captcha) *utils.AppError {
	if strings.TrimSpace(f.Username) == "" {
		return utils.NewValidationError("username is required")
	}
	if strings.TrimSpace(f.DisplayName) == "" {
		return utils.NewValidationError("display name is required")
	}
	if f.Password == "" {
		return utils.NewValidationError("password is required")
	}
	if f.ConfirmPassword == "" {
		return utils.NewValidationError("password confirmation is required")
	}
	if f.Password != f.ConfirmPassword {
		return utils.NewValidationError("passwords do not match")
	}
	if !captcha.Matches(f.CaptchaInput) {
		captcha.Regenerate()
		return utils.NewAppError(utils.ErrCaptchaMismatch, "captcha code is incorrect", nil)
	}
	if !f.Agreed {
		return utils.NewValidationError("the user agreement must be accepted")
	}
	return nil
}

// PostDraft carries the create-post fields.
type PostDraft struct {
	Title       string
	Summary     string
	CommunityID uuid.UUID
	Content     string
}

func (f *PostDraft) Validate() *utils.AppError {
	if strings.TrimSpace(f.Title) == "" {
		return utils.NewValidationError("title is required")
	}
	if len([]rune(f.Title)) > maxTitleLength {
		return utils.NewValidationError("title must be at most 100 characters")
	}
	if len([]rune(f.Summary)) > maxSummaryLength {
		return utils.NewValidationError("summary must be at most 200 characters")
	}
	if f.CommunityID == uuid.Nil {
		return utils.NewValidationError("a community must be selected")
	}
	if strings.TrimSpace(f.Content) == "" {
		return utils.NewValidationError("content is required")
	}
	return nil
}

// AppDraft carries the app directory submission fields.
type AppDraft struct {
	Name        string
	URL         string
	Description string
}

func (f *AppDraft) Validate() *utils.AppError {
	if strings.TrimSpace(f.Name) == "" {
		return utils.NewValidationError("app name is required")
	}
	if strings.TrimSpace(f.URL) == "" {
		return utils.NewValidationError("app URL is required")
	}
	return nil
}

// NormalizedURL returns the submitted address with a scheme, defaulting
// to https when none was typed.
func (f *AppDraft) NormalizedURL() string {
	url := strings.TrimSpace(f.URL)
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}
