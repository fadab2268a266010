// Package timezone provides the hotel's clock.
//
// Timestamps (created_at) are shown in the application timezone, while calendar dates
// (check_in, check_out, calendar days) are plain dates stored as midnight UTC:
//
//	now := timezone.Now()                  // wall clock in APP_TIMEZONE
//	today := timezone.Today()              // today's date at the hotel, midnight UTC
//	day, err := timezone.ParseDate("2025-01-15")
//	label := timezone.Format(now, time.RFC3339)
//
// The timezone is configured via APP_TIMEZONE using IANA names ("Africa/Nairobi", "UTC")
// and is initialized when the package is imported.
package timezone
