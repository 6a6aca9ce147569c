package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// OrderStatus is a stage tag on an order's fulfilment timeline.
type OrderStatus string

const (
	OrderPlaced       OrderStatus = "PLACED"
	OrderConfirmed    OrderStatus = "CONFIRMED"
	OrderQualityCheck OrderStatus = "QUALITY_CHECK"
	OrderShipped      OrderStatus = "SHIPPED"
	OrderDelivered    OrderStatus = "DELIVERED"
)

var (
	// ErrInvalidOrderID is returned when an order id does not match the ORD-<digits> format.
	ErrInvalidOrderID = errors.New("order id must match ORD-<digits>")
	// ErrTimelineOrder is returned when a completed stage follows an incomplete one.
	ErrTimelineOrder = errors.New("timeline stage completed before an earlier stage")

	orderIDPattern = regexp.MustCompile(`^ORD-\d+$`)
)

// TimelineStage is a single record on an order's progression timeline.
type TimelineStage struct {
	Status      OrderStatus `json:"status" yaml:"status"`
	Label       string      `json:"label" yaml:"label"`
	Timestamp   string      `json:"timestamp" yaml:"timestamp"`
	Completed   bool        `json:"completed" yaml:"completed"`
	Description string      `json:"description" yaml:"description"`
}

// Timeline is an ordered sequence of stages reflecting real-world progression
// (placed, confirmed, quality-check, shipped, delivered). Order is significant.
type Timeline []TimelineStage

// Validate checks the completion invariant: a later stage must not be marked
// completed while an earlier one is not.
func (timeline Timeline) Validate() error {
	sawIncomplete := false
	for i, stage := range timeline {
		if stage.Completed && sawIncomplete {
			return fmt.Errorf("stage %d (%s): %w", i, stage.Status, ErrTimelineOrder)
		}
		if !stage.Completed {
			sawIncomplete = true
		}
	}
	return nil
}

// Order represents a customer purchase. Items are snapshots copied at order
// time, not live references to the product collection. Orders are immutable
// once created except for status and timeline progression.
type Order struct {
	ID                string      `json:"id" yaml:"id"`
	CustomerName      string      `json:"customerName" yaml:"customerName"`
	TotalAmount       float64     `json:"totalAmount" yaml:"totalAmount"`
	Items             []Product   `json:"items" yaml:"items"`
	CurrentStatus     OrderStatus `json:"currentStatus" yaml:"currentStatus"`
	EstimatedDelivery string      `json:"estimatedDelivery" yaml:"estimatedDelivery"`
	Timeline          Timeline    `json:"timeline" yaml:"timeline"`
}

// Validate checks the order id format and the timeline completion invariant.
func (order *Order) Validate() error {
	if !orderIDPattern.MatchString(order.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidOrderID, order.ID)
	}
	return order.Timeline.Validate()
}
