package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// エラーの種類。errors.Is で判定できる
var (
	//404 対象が存在しない
	ErrNotFound = errors.New("not found")
	//400 状態が不正（空カート、販売停止、遷移不可など）
	ErrInvalidState = errors.New("invalid state")
	//400 入力不正
	ErrValidation = errors.New("validation error")
	//403 ロール・所有の不一致
	ErrForbidden = errors.New("forbidden")
	//401 未認証
	ErrUnauthenticated = errors.New("unauthenticated")
	//500
	ErrInternal = errors.New("internal error")
)

// handlerでそのままレスポンスにできるエラー
type HTTPError struct {
	Status  int
	Message string
	Kind    error
	// 500のときの原因。クライアントには返さない
	Cause error
}

func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

// statusから種類を決める
func NewHTTPError(status int, message string) error {
	return &HTTPError{Status: status, Message: message, Kind: kindOf(status)}
}

func kindOf(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusBadRequest:
		return ErrValidation
	default:
		return ErrInternal
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func notFound(msg string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: msg, Kind: ErrNotFound}
}

func invalidState(msg string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg, Kind: ErrInvalidState}
}

func badRequest(msg string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: msg, Kind: ErrValidation}
}

func forbidden(msg string) error {
	return &HTTPError{Status: http.StatusForbidden, Message: msg, Kind: ErrForbidden}
}

func unauthenticated() error {
	return unauthenticatedMsg("unauthorized")
}

func unauthenticatedMsg(msg string) error {
	return &HTTPError{Status: http.StatusUnauthorized, Message: msg, Kind: ErrUnauthenticated}
}

// DBエラーなど。メッセージは固定
func internal(cause error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "server error", Kind: ErrInternal, Cause: cause}
}

// 入力エラー（validatorから使う）
func BadRequest(msg string) error {
	return badRequest(msg)
}

// すでにHTTPErrorならそのまま、それ以外は500に包む
func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return internal(err)
}
