package qrcode

import "net/url"

const (
	renderEndpoint = "https://api.qrserver.com/v1/create-qr-code/"
	imageSize      = "300x300"
)

// ImageURL returns a URL that renders the given PIX copy-paste payload as a
// scannable QR image. No request is made here; resolution happens wherever
// the URL ends up embedded.
func ImageURL(payload string) string {
	query := url.Values{}
	query.Set("size", imageSize)
	query.Set("data", payload)

	return renderEndpoint + "?" + query.Encode()
}
