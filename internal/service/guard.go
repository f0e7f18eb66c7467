package service

import (
	"github.com/SergeyBogomolovv/order-service/internal/entities"
	"github.com/SergeyBogomolovv/order-service/internal/identity"
)

// authorizeRead: админ видит любой заказ, остальные только свои
func authorizeRead(order entities.Order, id identity.Identity) error {
	if id.IsAdmin || order.OwnerID == id.SubjectID {
		return nil
	}
	return &entities.AccessDeniedError{OrderID: order.ID, SubjectID: id.SubjectID}
}

// ownerFilter определяет фильтр списка на уровне хранилища.
// all == true означает выборку без фильтра по владельцу.
func ownerFilter(id identity.Identity) (ownerID string, all bool) {
	if id.IsAdmin {
		return "", true
	}
	return id.SubjectID, false
}
