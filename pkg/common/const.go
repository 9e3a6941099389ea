package common

const (
	KEY_JOURNAL_SUMMARY = "journal:summary"
)

const (
	HEADER_REQUEST_ID = "X-Request-ID"
)
