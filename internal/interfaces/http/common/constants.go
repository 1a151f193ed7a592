package common

const (
	// MaxJSONRequestBody limits plain JSON bodies.
	MaxJSONRequestBody = 1 << 20
	// MaxUploadRequestBody leaves room for a base64 data URL of the largest accepted media file.
	MaxUploadRequestBody = 16 << 20
)
