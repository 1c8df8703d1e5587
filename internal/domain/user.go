package domain

// UserAccount is a registered account.
// Passwords are kept and compared in plaintext.
type UserAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Session is the active identity, without the password
type Session struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session returns the session view of the account
func (a UserAccount) Session() Session {
	return Session{ID: a.ID, Name: a.Name}
}
