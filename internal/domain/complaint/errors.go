package complaint

import "errors"

var (
	ErrComplaintNotFound      = errors.New("complaint not found")
	ErrHumanIDAlreadyAssigned = errors.New("complaint ID is already assigned")
	ErrIDAlreadyAssigned      = errors.New("complaint storage ID is already assigned")
)
