package models

// User is the logged-in SpendWise user as reported by the backend.
type User struct {
	// ID is the backend user ID.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Email is the login email address.
	Email string `json:"email"`
}

// Profile is the backend's profile response: the user plus the session
// token the request was made with.
type Profile struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
