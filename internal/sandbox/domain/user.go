package domain

import "github.com/finconsgroup/zooadmin/pkg/zoosdk"

// User is a backend user record. PasswordHash is an Argon2id PHC string
// and never leaves the sandbox process.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Username     string
	PasswordHash string
	Role         zoosdk.Role
	OperatorType *zoosdk.OperatorType
}
