package service

// QRCodeService renders payment QR codes for businesses.
type QRCodeService interface {
	// PaymentQR encodes a upi://pay deep link for the given UPI id and
	// payee name and returns it as a PNG image.
	PaymentQR(upiID, payeeName string) ([]byte, error)
}
