package user

import "net/url"

// DefaultName is given to a device's user on first use.
const DefaultName = "Guest"

// User is the person behind one device.
type User struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// DefaultAvatar returns the generated avatar for a user id.
func DefaultAvatar(id string) string {
	return "https://api.dicebear.com/9.x/avataaars/svg?seed=" + url.QueryEscape(id)
}

// PresetAvatars are the avatars offered when editing a profile.
var PresetAvatars = []string{
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Felix",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Aneka",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Scooter",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Precious",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Abby",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Bandit",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Bubba",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Callie",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Cookie",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Garfield",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Gizmo",
	"https://api.dicebear.com/9.x/avataaars/svg?seed=Loki",
}

// Find returns the user with the given id.
func Find(users []User, id string) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
