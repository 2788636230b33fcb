package models

// User is a stored account. The JSON field order is the on-disk order of the backing file.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// NextUserID returns max(id)+1 over users, or 1 for an empty collection.
func NextUserID(users []User) int {
	maxID := 0
	for _, u := range users {
		if u.ID > maxID {
			maxID = u.ID
		}
	}
	return maxID + 1
}
