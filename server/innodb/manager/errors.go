package manager

import "errors"

var (
	ErrManagerClosed = errors.New("manager: closed")
	ErrPoolExhausted = errors.New("manager: buffer pool exhausted, no frame available")
	ErrPageNotFound  = errors.New("manager: page not resident in buffer pool")
	ErrFrameLocked   = errors.New("manager: page still pinned, cannot delete")
)
