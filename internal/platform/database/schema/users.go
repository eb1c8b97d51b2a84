package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table          string
	ID             string
	Username       string
	Email          string
	PasswordHash   string
	FavoriteTeam   string
	FavoriteDriver string
	AvatarURL      string
	Role           string
	Status         string
	LastLogin      string
	LoginCount     string
	CreatedAt      string
	UpdatedAt      string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:          "users",
	ID:             "id",
	Username:       "username",
	Email:          "email",
	PasswordHash:   "password_hash",
	FavoriteTeam:   "favorite_team",
	FavoriteDriver: "favorite_driver",
	AvatarURL:      "avatar_url",
	Role:           "role",
	Status:         "status",
	LastLogin:      "last_login",
	LoginCount:     "login_count",
	CreatedAt:      "created_at",
	UpdatedAt:      "updated_at",
}

func (t UsersTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.FavoriteTeam, t.FavoriteDriver, t.AvatarURL, t.Role, t.Status, t.LastLogin, t.LoginCount, t.CreatedAt, t.UpdatedAt}
}
