package models

// User is a platform account as written by the upstream auth backend.
// Role flags are independent; a user may carry any combination of them.
type User struct {
	ID            string `bson:"id" json:"id"`
	Email         string `bson:"email" json:"email"`
	Name          string `bson:"name" json:"name"`
	IsOrganiser   bool   `bson:"is_organiser" json:"is_organiser"`
	IsSupport     bool   `bson:"is_support" json:"is_support"`
	IsMasterAdmin bool   `bson:"is_masteradmin" json:"is_masteradmin"`
	CreatedAt     string `bson:"created_at" json:"created_at"`
}

// IsRegular reports whether the user holds none of the elevated roles.
func (u User) IsRegular() bool {
	return !u.IsOrganiser && !u.IsSupport && !u.IsMasterAdmin
}
