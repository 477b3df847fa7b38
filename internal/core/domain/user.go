package domain

import "time"

// User is an account holder. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Favorites    []int     `json:"favorites"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasFavorite reports whether pokemonID is among the user's favorites.
func (u *User) HasFavorite(pokemonID int) bool {
	for _, id := range u.Favorites {
		if id == pokemonID {
			return true
		}
	}
	return false
}
