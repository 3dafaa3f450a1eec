package user

// Provider says how an account authenticates.
type Provider string

const (
	PasswordProvider Provider = "password"
	GoogleProvider   Provider = "google"
)

type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
	Provider    Provider
	// PasswordHash is empty for accounts provisioned through Google sign-in.
	PasswordHash string
	GoogleId     string
}
