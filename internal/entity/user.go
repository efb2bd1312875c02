package entity

import "time"

// Admin is a back-office account authenticated by username and password.
type Admin struct {
	Id           int       `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// User is a customer account created through the OAuth identity provider.
// Id doubles as the stable linking key for meetings, inquiries and orders.
type User struct {
	Id         string    `db:"id"`
	ProviderId string    `db:"provider_id"`
	Email      string    `db:"email"`
	Name       string    `db:"name"`
	AvatarURL  string    `db:"avatar_url"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
