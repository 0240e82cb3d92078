package store

import (
	"errors"
	"fmt"
)

// ResultCode classifies driver failures independently of the vendor client.
type ResultCode int

const (
	OK ResultCode = iota
	RecordNotFound
	RecordExists
	BadRecord
	Timeout
	ServerError
	ClientClosed
)

func (c ResultCode) String() string {
	switch c {
	case OK:
		return "ok"
	case RecordNotFound:
		return "record not found"
	case RecordExists:
		return "record exists"
	case BadRecord:
		return "bad record"
	case Timeout:
		return "timeout"
	case ServerError:
		return "server error"
	case ClientClosed:
		return "client closed"
	default:
		return fmt.Sprintf("result code %d", int(c))
	}
}

// Error is returned by drivers for every failure they can classify.
type Error struct {
	Code ResultCode
	Msg  string
	Err  error
}

func NewError(code ResultCode, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return e.Code.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

var ErrNotFound = NewError(RecordNotFound, "", nil)

// Code returns the ResultCode carried by err, OK for nil and ServerError for
// errors that did not come from a driver.
func Code(err error) ResultCode {
	if err == nil {
		return OK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ServerError
}

func IsNotFound(err error) bool  { return err != nil && Code(err) == RecordNotFound }
func IsBadRecord(err error) bool { return err != nil && Code(err) == BadRecord }
