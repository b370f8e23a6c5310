package order

import "time"

// Order statuses as they appear in the reference dataset.
const (
	StatusCreated     = "created"
	StatusApproved    = "approved"
	StatusProcessing  = "processing"
	StatusShipped     = "shipped"
	StatusDelivered   = "delivered"
	StatusCanceled    = "canceled"
	StatusUnavailable = "unavailable"
	StatusInvoiced    = "invoiced"
)

// StatusDescriptions explains each status in customer-facing terms.
var StatusDescriptions = map[string]string{
	StatusCreated:     "Your order has been created but not yet processed. Payment is being verified.",
	StatusApproved:    "Your payment has been approved and your order is being prepared for shipping.",
	StatusProcessing:  "Your order is currently being processed in our warehouse.",
	StatusShipped:     "Your order has been shipped and is on its way to you.",
	StatusDelivered:   "Your order has been delivered to the specified address.",
	StatusCanceled:    "Your order has been canceled.",
	StatusUnavailable: "Some items in your order are currently unavailable.",
	StatusInvoiced:    "Your order has been invoiced and is being prepared for shipping.",
}

// Order is read-only reference data loaded once at startup. Identifiers
// are 32-char alphanumeric codes; any timestamp may be absent.
type Order struct {
	OrderID    string `gorm:"column:order_id;type:varchar(32);primaryKey"`
	CustomerID string `gorm:"column:customer_id;type:varchar(32);index"`
	Status     string `gorm:"column:order_status;type:varchar(50)"`

	PurchasedAt         *time.Time `gorm:"column:order_purchase_timestamp"`
	ApprovedAt          *time.Time `gorm:"column:order_approved_at"`
	CarrierDeliveredAt  *time.Time `gorm:"column:order_delivered_carrier_date"`
	DeliveredAt         *time.Time `gorm:"column:order_delivered_customer_date"`
	EstimatedDeliveryAt *time.Time `gorm:"column:order_estimated_delivery_date"`
}

func (Order) TableName() string { return "orders" }
