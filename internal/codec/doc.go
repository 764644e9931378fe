// Package codec converts between tasks and their JSON records.
//
// A batch is a JSON array of records:
//
//	[
//	  {
//	    "description": "file taxes",
//	    "due-date": {"year": 2024, "month": 3, "day": 30, "hour": 17, "minute": 0},
//	    "priority": {"urgent": true, "important": true},
//	    "status": "UP_NEXT",
//	    "tags": [{"name": "home"}],
//	    "progress": 20,
//	    "estimated-time-to-complete": 3
//	  }
//	]
//
// # Month encoding
//
// "month" is ZERO-based: 0 is January, 11 is December. The example above is
// due on 30 April. Values outside 0..11 (and likewise for the other
// components) roll over into the neighbouring unit instead of failing.
//
// # Validation
//
// Parsing never fails a batch because of one record. A record is dropped
// when its description, due date, priority or status is missing or has the
// wrong shape, or when "progress" or "estimated-time-to-complete" is present
// but invalid. A due date of null means "no due date". A malformed entry in
// "tags" is skipped on its own; the task is kept.
//
// Serialize writes every field Parse reads, with "due-date": null for tasks
// without a due date, so a serialized batch parses back to equal tasks.
package codec
