package service

import "errors"

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrEmptyCart          = errors.New("cart has no items")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrVoucherAlreadyUsed = errors.New("voucher already used in this session")
	ErrNoActiveVoucher    = errors.New("no active voucher")
	ErrOrderRejected      = errors.New("order rejected")
)
