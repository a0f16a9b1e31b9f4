package models

// Group represents a dining group. CreatedBy is always a member at creation
// time; a group whose member set empties is deleted rather than kept around.
type Group struct {
	ID        int      `json:"group_id"`
	Name      string   `json:"group_name"`
	CreatedBy string   `json:"created_by"`
	Members   []string `json:"members"`
}

// HasMember reports whether username is a member (exact match).
func (g Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}
