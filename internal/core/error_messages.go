package core

// error_messages.go maps technical errors to user-facing messages with a
// support code.
//
// Codes by category:
//
//	DB001-DB007    record store (duplicates, connectivity)
//	VAL001-VAL003  submitted data (records, dates, export columns)
//	FILE001-FILE005 uploaded workbook (size, type, structure)
//	UPL002-UPL005  processing limits and cancellation
//	REQ001         malformed request bodies
//	RATE001        throttling
//	ERR000         anything else; check the logs for the technical error
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns precede general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Store constraints
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this standardid already exists",
			Action:  "Validate the file first to see which rows collide",
			Code:    "DB001",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Review your data for duplicate standardid values",
			Code:    "DB002",
		},
	},
	{
		pattern: "record not found",
		msg: UserMessage{
			Message: "Record not found",
			Action:  "Check the standardid and try again",
			Code:    "DB003",
		},
	},

	// Store connectivity
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// Submitted data
	{
		pattern: "invalid record",
		msg: UserMessage{
			Message: "The record failed validation",
			Action:  "Fill every required field and use YYYY-MM-DD for tanggal",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, for example 2023-05-01",
			Code:    "VAL002",
		},
	},
	{
		pattern: "no export columns",
		msg: UserMessage{
			Message: "No valid columns were selected for export",
			Action:  "Select at least one record column",
			Code:    "VAL003",
		},
	},

	// Uploaded workbook
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum upload size",
			Action:  "Split the data across smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no worksheet",
		msg: UserMessage{
			Message: "Worksheet not found in Excel file",
			Action:  "Make sure the workbook has at least one sheet",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg: UserMessage{
			Message: "File is not a readable .xlsx workbook",
			Action:  "Save the file as Excel Workbook (.xlsx) and upload it again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "unsupported file type",
		msg: UserMessage{
			Message: "Only .xlsx files are allowed",
			Action:  "Download the template and fill it in",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file uploaded",
		msg: UserMessage{
			Message: "No file uploaded",
			Action:  "Please select an .xlsx file to upload",
			Code:    "FILE004",
		},
	},

	// Processing
	{
		pattern: "too many concurrent uploads",
		msg: UserMessage{
			Message: "System is busy processing other uploads",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request body could not be read",
			Action:  "Send a JSON body matching the documented fields",
			Code:    "REQ001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unmatched
// errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action" for display, for
// example in CLI output.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a specific pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
