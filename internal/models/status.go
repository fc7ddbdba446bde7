package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownStatus = errors.New("unknown status")

func parseStatus[T ~string](kind, raw string, known []T) (T, error) {
	candidate := T(strings.ToUpper(strings.TrimSpace(raw)))
	for _, k := range known {
		if k == candidate {
			return k, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %q: %w", kind, raw, ErrUnknownStatus)
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipping   OrderStatus = "SHIPPING"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

var orderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipping, OrderCompleted, OrderCancelled}

func ParseOrderStatus(raw string) (OrderStatus, error) {
	return parseStatus("order status", raw, orderStatuses)
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s OrderStatus) IsPending() bool { return s == OrderPending }

type OrderDetailStatus string

const (
	OrderDetailPending   OrderDetailStatus = "PENDING"
	OrderDetailAssigned  OrderDetailStatus = "ASSIGNED"
	OrderDetailApproved  OrderDetailStatus = "APPROVED"
	OrderDetailRejected  OrderDetailStatus = "REJECTED"
	OrderDetailShipping  OrderDetailStatus = "SHIPPING"
	OrderDetailCompleted OrderDetailStatus = "COMPLETED"
)

var orderDetailStatuses = []OrderDetailStatus{
	OrderDetailPending, OrderDetailAssigned, OrderDetailApproved,
	OrderDetailRejected, OrderDetailShipping, OrderDetailCompleted,
}

func ParseOrderDetailStatus(raw string) (OrderDetailStatus, error) {
	return parseStatus("order detail status", raw, orderDetailStatuses)
}

func (s *OrderDetailStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderDetailStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s OrderDetailStatus) IsPending() bool { return s == OrderDetailPending }

type ConsignmentStatus string

const (
	ConsignmentPending   ConsignmentStatus = "PENDING"
	ConsignmentApproved  ConsignmentStatus = "APPROVED"
	ConsignmentRejected  ConsignmentStatus = "REJECTED"
	ConsignmentNurturing ConsignmentStatus = "NURTURING"
	ConsignmentCompleted ConsignmentStatus = "COMPLETED"
	ConsignmentCancelled ConsignmentStatus = "CANCELLED"
)

var consignmentStatuses = []ConsignmentStatus{
	ConsignmentPending, ConsignmentApproved, ConsignmentRejected,
	ConsignmentNurturing, ConsignmentCompleted, ConsignmentCancelled,
}

func ParseConsignmentStatus(raw string) (ConsignmentStatus, error) {
	return parseStatus("consignment status", raw, consignmentStatuses)
}

func (s *ConsignmentStatus) UnmarshalText(b []byte) error {
	v, err := ParseConsignmentStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s ConsignmentStatus) IsPending() bool { return s == ConsignmentPending }

type SaleRequestStatus string

const (
	SaleRequestPending    SaleRequestStatus = "PENDING"
	SaleRequestInspecting SaleRequestStatus = "INSPECTING"
	SaleRequestApproved   SaleRequestStatus = "APPROVED"
	SaleRequestRejected   SaleRequestStatus = "REJECTED"
	SaleRequestCancelled  SaleRequestStatus = "CANCELLED"
	SaleRequestCompleted  SaleRequestStatus = "COMPLETED"
)

var saleRequestStatuses = []SaleRequestStatus{
	SaleRequestPending, SaleRequestInspecting, SaleRequestApproved,
	SaleRequestRejected, SaleRequestCancelled, SaleRequestCompleted,
}

func ParseSaleRequestStatus(raw string) (SaleRequestStatus, error) {
	return parseStatus("sale request status", raw, saleRequestStatuses)
}

func (s *SaleRequestStatus) UnmarshalText(b []byte) error {
	v, err := ParseSaleRequestStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s SaleRequestStatus) IsPending() bool { return s == SaleRequestPending }

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

var withdrawalStatuses = []WithdrawalStatus{WithdrawalPending, WithdrawalApproved, WithdrawalRejected}

func ParseWithdrawalStatus(raw string) (WithdrawalStatus, error) {
	return parseStatus("withdrawal status", raw, withdrawalStatuses)
}

func (s *WithdrawalStatus) UnmarshalText(b []byte) error {
	v, err := ParseWithdrawalStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s WithdrawalStatus) IsPending() bool { return s == WithdrawalPending }
