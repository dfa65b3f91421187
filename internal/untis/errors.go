package untis

import (
	"errors"
	"fmt"
)

// Коды ошибок JSON-RPC WebUntis
const (
	codeAuthFailed       = -8504
	codeNotAuthenticated = -8520
	codeTooManyResults   = -6003
)

var (
	ErrAuthFailed       = errors.New("untis: bad credentials")
	ErrNotAuthenticated = errors.New("untis: not authenticated")
	ErrTooManyResults   = errors.New("untis: too many search results")
	ErrUnexpectedStatus = errors.New("untis: unexpected http status")
)

// RPCError ошибка, которую вернул сервер в поле error ответа
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("untis rpc error %d: %s", e.Code, e.Message)
}

// Is сопоставляет известные коды с sentinel-ошибками
func (e *RPCError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.Code == codeAuthFailed
	case ErrNotAuthenticated:
		return e.Code == codeNotAuthenticated
	case ErrTooManyResults:
		return e.Code == codeTooManyResults
	}
	return false
}
