package entities

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAccessDenied      = errors.New("access denied")
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)

type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found with id %d", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

type InsufficientStockError struct {
	ProductID int64
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type AccessDeniedError struct {
	OrderID   int64
	SubjectID string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("subject %q is not allowed to view order %d", e.SubjectID, e.OrderID)
}

func (e *AccessDeniedError) Unwrap() error { return ErrAccessDenied }

// RemoteServiceUnavailableError оборачивает сбой удаленного вызова
type RemoteServiceUnavailableError struct {
	Service string
	Err     error
}

func (e *RemoteServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Service, e.Err)
}

func (e *RemoteServiceUnavailableError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

func (e *RemoteServiceUnavailableError) Unwrap() error { return e.Err }
