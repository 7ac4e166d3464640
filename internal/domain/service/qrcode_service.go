package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GeneratePortfolioQR generates a PNG QR code pointing at a user's
	// public portfolio page.
	GeneratePortfolioQR(userName string) ([]byte, error)
}
