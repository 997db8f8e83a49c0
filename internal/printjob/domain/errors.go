package domain

import "errors"

var (
	ErrInvalidUserName    = errors.New("invalid_user_name")
	ErrInvalidMachineName = errors.New("invalid_machine_name")
	ErrInvalidPrinterName = errors.New("invalid_printer_name")
	ErrInvalidPageCount   = errors.New("invalid_page_count")
	ErrInvalidFileSize    = errors.New("invalid_file_size")
)

// IsValidationError reports whether err identifies a malformed job report.
// Anything else that escapes the service is a storage failure.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidUserName),
		errors.Is(err, ErrInvalidMachineName),
		errors.Is(err, ErrInvalidPrinterName),
		errors.Is(err, ErrInvalidPageCount),
		errors.Is(err, ErrInvalidFileSize):
		return true
	default:
		return false
	}
}
