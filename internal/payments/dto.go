package payments

import "time"

// InitiateRequest asks for UPI payment instructions for one course.
type InitiateRequest struct {
	CourseID string `json:"course_id" validate:"required"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

// VerifyRequest claims that the UPI transfer identified by TransactionID completed.
type VerifyRequest struct {
	CourseID      string `json:"course_id" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gt=0"`
	TransactionID string `json:"transaction_id" validate:"required,max=128"`
}

// Instructions is what a client needs to open a UPI app for the payment.
type Instructions struct {
	PaymentID      string    `json:"payment_id"`
	TransactionRef string    `json:"transaction_ref"`
	CourseID       string    `json:"course_id"`
	CourseName     string    `json:"course_name"`
	Amount         int64     `json:"amount"`
	AmountDisplay  string    `json:"amount_display"`
	UPIID          string    `json:"upi_id"`
	PayeeName      string    `json:"payee_name"`
	UPILink        string    `json:"upi_link"`
	CreatedAt      time.Time `json:"created_at"`
}
