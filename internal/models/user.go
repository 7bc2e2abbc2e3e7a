package models

// User identifies the Telegram user a message came from. It is a value object,
// not a persisted row; user_id and username are stored inline on the logs.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}
