package domain

// User represents an operator of the application (volunteer or staff).
// Authentication details live here; authorization is out of scope.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt hash, never serialized
	IsActive     bool   `json:"isActive"`
	AuditFields
}
