package dto

type OrderProductDTO struct {
	ProductId string  `json:"productId" binding:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Image     string  `json:"image"`
}

type ShippingDetailsDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	PinCode  string `json:"pinCode"`
}

type CreateOrderDTO struct {
	UserId          string             `json:"userId" binding:"required"`
	ShippingDetails ShippingDetailsDTO `json:"shippingDetails"`
	Products        []OrderProductDTO  `json:"products" binding:"required,min=1,dive"`
	Subtotal        float64            `json:"subtotal"`
	ShippingCost    float64            `json:"shippingCost"`
	TotalAmount     float64            `json:"totalAmount" binding:"required,gt=0"`
}

type VerifyPaymentDTO struct {
	RazorpayOrderId   string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentId string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

type UpdateShippingDTO struct {
	Status     string `json:"status" binding:"required"`
	TrackingId string `json:"trackingId"`
}
