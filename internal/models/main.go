// Package models defines the wire-level records exchanged with the
// Hack or Snooze API.
package models

import "time"

// Story is a single story as the API represents it.
type Story struct {
	// StoryID is the opaque identifier assigned by the service.
	// Empty until the service accepts a creation request.
	StoryID string `json:"storyId"`
	// Title is the headline shown in story lists.
	Title string `json:"title"`
	// Author is the free-text author name supplied on submission.
	Author string `json:"author"`
	// URL is the source URL the story links to.
	URL string `json:"url"`
	// Username is the login of the user who submitted the story.
	Username string `json:"username"`
	// CreatedAt is the service-assigned creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// User is a user record as the API represents it. Favorites and
// Stories are only populated by the endpoints that return the full
// record (signup, login, get-user).
type User struct {
	// Username is the stable account identifier, unique service-wide.
	Username string `json:"username"`
	// Name is the display name chosen at signup.
	Name string `json:"name"`
	// CreatedAt is the account creation timestamp.
	CreatedAt time.Time `json:"createdAt"`
	// Favorites holds the stories this user has favorited, in service order.
	Favorites []Story `json:"favorites"`
	// Stories holds the stories this user has submitted, in service order.
	Stories []Story `json:"stories"`
}

// StoryPayload carries the user-supplied fields of a story submission.
type StoryPayload struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Credentials carries the fields of a signup or login request body.
// Name is only used by signup.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}
