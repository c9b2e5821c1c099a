package protocol

import "strconv"

// RequestID selects the operation an envelope asks for.
type RequestID int

const (
	LogIn RequestID = iota
	CreateUser
	UpdateUser
	DeleteUser
	ViewAll
	GetAccountNumber
	GetBalance
	GetHistory
	MakeTransaction
	TransferAmount
)

var requestNames = [...]string{
	LogIn:            "LogIn",
	CreateUser:       "CreateUser",
	UpdateUser:       "UpdateUser",
	DeleteUser:       "DeleteUser",
	ViewAll:          "ViewAll",
	GetAccountNumber: "GetAccountNumber",
	GetBalance:       "GetBalance",
	GetHistory:       "GetHistory",
	MakeTransaction:  "MakeTransaction",
	TransferAmount:   "TransferAmount",
}

// Valid reports whether id names a known operation.
func (id RequestID) Valid() bool {
	return id >= LogIn && id <= TransferAmount
}

func (id RequestID) String() string {
	if !id.Valid() {
		return "Unknown(" + strconv.Itoa(int(id)) + ")"
	}
	return requestNames[id]
}
