// Package users models rows of the user-account table and the email lookup
// performed over them.
package users

// Columns is the projection requested when only identity fields are needed.
var Columns = []string{"id", "username", "email", "role"}

// User is one row of the user table. Values are kept exactly as decoded from
// JSON (string, float64, bool, nil, ...); nothing is validated or coerced.
type User struct {
	ID       any `json:"id"`
	Username any `json:"username"`
	Email    any `json:"email"`
	Role     any `json:"role"`
}

// EmailString returns the email when it is a JSON string.
func (u User) EmailString() (string, bool) {
	s, ok := u.Email.(string)
	return s, ok
}

// FindByEmail returns the first user whose Email is a string equal to target.
// The comparison is case-sensitive and does no trimming or normalization.
// Rows whose email is missing or not a string never match.
func FindByEmail(list []User, target string) (User, bool) {
	for _, u := range list {
		if e, ok := u.EmailString(); ok && e == target {
			return u, true
		}
	}
	return User{}, false
}
