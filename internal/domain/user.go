package domain

import "time"

// RoleCustomer is the default role for self-registered accounts.
const RoleCustomer = "customer"

// User is the storefront account identity. Auth here is simulated, so the
// record carries only what profile and greeting views need.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// FirstName returns the leading name segment, used in greetings.
func (u User) FirstName() string {
	for i := 0; i < len(u.Name); i++ {
		if u.Name[i] == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}

// IsProfileComplete mirrors the profile page's completeness check.
func (u User) IsProfileComplete() bool {
	return u.Name != "" && u.Email != "" && u.Phone != ""
}
