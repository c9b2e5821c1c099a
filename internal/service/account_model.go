package service

// LoginResult is returned by a successful LogIn.
type LoginResult struct {
	UserName      string
	AccountNumber string
	IsAdmin       bool
}

// User is the input for creating an account.
type User struct {
	UserName string
	Password string
	FullName string
	Age      string
	IsAdmin  bool
}

// UserUpdate changes an existing account. Empty strings keep the current
// value; IsAdmin is always applied.
type UserUpdate struct {
	AccountNumber string
	UserName      string
	Password      string
	FullName      string
	Age           string
	IsAdmin       bool
}
